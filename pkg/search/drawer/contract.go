package drawer

import (
	"time"

	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/search/measure"
)

// Drawer is an interface that defines the methods for drawing a search.
type Drawer interface {
	// AddStep adds a step to the drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentStepName, childrenStepName string) error
	// AddAlmanac adds every stage of the almanac, each table being a link between two stages.
	AddAlmanac(alm *almanac.Almanac) error
	// Draw writes the graph.
	Draw() error
	// SetTotalTime sets the total time for the step.
	SetTotalTime(stepName string, totalTime time.Duration) error
	// AddMeasure adds a measure to the drawer.
	AddMeasure(measure measure.Measure) error
}
