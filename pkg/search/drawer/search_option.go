package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/search/measure"
	"github.com/askiada/go-almanac/pkg/search/model"
)

type searchDrawer struct {
	Drawer
	alm *almanac.Almanac
	m   measure.Measure
}

func (sd *searchDrawer) New(search *model.SearchInfo) error {
	err := sd.addStages(search)
	if err != nil {
		return errors.Wrap(err, "unable to add stages to drawer")
	}

	for _, name := range []string{DispatcherStep, CollectorStep} {
		err := sd.AddStep(name)
		if err != nil {
			return errors.Wrapf(err, "unable to add %s step to drawer", name)
		}
	}

	for i := range search.Workers {
		name := measure.WorkerName(i)

		err := sd.AddStep(name)
		if err != nil {
			return err
		}

		err = sd.AddLink(DispatcherStep, name)
		if err != nil {
			return err
		}

		err = sd.AddLink(name, CollectorStep)
		if err != nil {
			return err
		}
	}

	return nil
}

func (sd *searchDrawer) addStages(search *model.SearchInfo) error {
	if sd.alm != nil {
		return sd.AddAlmanac(sd.alm)
	}

	for i, stage := range search.Stages {
		err := sd.AddStep(stage)
		if err != nil {
			return err
		}

		if i == 0 {
			continue
		}

		err = sd.AddLink(search.Stages[i-1], stage)
		if err != nil {
			return err
		}
	}

	return nil
}

func (sd *searchDrawer) OnDispatch(*model.SearchInfo, model.BatchInfo) error {
	return nil
}

func (sd *searchDrawer) OnResult(*model.SearchInfo, model.ResultInfo) error {
	return nil
}

func (sd *searchDrawer) Finish(search *model.SearchInfo, _ model.ResultInfo) error {
	err := sd.SetTotalTime(CollectorStep, time.Since(search.StartTime))
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	if sd.m != nil {
		err = sd.AddMeasure(sd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = sd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw search")
	}

	return nil
}

// SearchDrawer returns an option drawing the search once it is finished. The almanac and the measure are optional.
// When set, the measure option must be registered before this one.
func SearchDrawer(drawer Drawer, alm *almanac.Almanac, measure measure.Measure) model.SearchOption {
	return &searchDrawer{drawer, alm, measure}
}
