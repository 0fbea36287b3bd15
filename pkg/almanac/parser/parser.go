package parser

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/search"
)

var (
	ErrMalformedInput = errors.New("malformed almanac input")
	ErrOddSeedPairs   = errors.New("seeds must come in start and length pairs")
)

var (
	seedsLineRegexp = regexp.MustCompile(`^seeds:\s*(.*)$`)
	headerRegexp    = regexp.MustCompile(`^([a-z]+)-to-([a-z]+)\s+map:\s*$`)
)

// Input is the content of an almanac file.
type Input struct {
	Seeds   []int64
	Almanac *almanac.Almanac
}

// ParseFile parses the almanac file at path.
func ParseFile(path string) (*Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	input, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", path)
	}

	return input, nil
}

type lineReader struct {
	scanner *bufio.Scanner
	lineNum int
}

func (lr *lineReader) next() (string, bool) {
	if !lr.scanner.Scan() {
		return "", false
	}

	lr.lineNum++

	return strings.TrimSpace(lr.scanner.Text()), true
}

func (lr *lineReader) nextData() (string, bool) {
	for {
		line, ok := lr.next()
		if !ok {
			return "", false
		}

		if line != "" {
			return line, true
		}
	}
}

// Parse reads an almanac from rd.
func Parse(rd io.Reader) (*Input, error) {
	lr := &lineReader{scanner: bufio.NewScanner(rd)}

	line, ok := lr.nextData()
	if !ok {
		return nil, errors.Wrap(ErrMalformedInput, "missing seeds line")
	}

	match := seedsLineRegexp.FindStringSubmatch(line)
	if match == nil {
		return nil, errors.Wrapf(ErrMalformedInput, "line %d: expected seeds line", lr.lineNum)
	}

	seeds, err := parseInts(match[1])
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", lr.lineNum)
	}

	tables := []*almanac.StageTable{}

	for {
		table, err := parseSection(lr)
		if err != nil {
			return nil, err
		}

		if table == nil {
			break
		}

		tables = append(tables, table)
	}

	if err := lr.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read input")
	}

	alm, err := almanac.New(tables...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build almanac")
	}

	return &Input{Seeds: seeds, Almanac: alm}, nil
}

func parseSection(lr *lineReader) (*almanac.StageTable, error) {
	header, ok := lr.nextData()
	if !ok {
		return nil, nil //nolint:nilnil // end of input
	}

	match := headerRegexp.FindStringSubmatch(header)
	if match == nil {
		return nil, errors.Wrapf(ErrMalformedInput, "line %d: expected map header, got %q", lr.lineNum, header)
	}

	from, to := almanac.Stage(match[1]), almanac.Stage(match[2])
	rules := []almanac.RangeRule{}

	for {
		line, ok := lr.next()
		if !ok || line == "" {
			break
		}

		values, err := parseInts(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lr.lineNum)
		}

		if len(values) != 3 {
			return nil, errors.Wrapf(ErrMalformedInput, "line %d: expected 3 values, got %d", lr.lineNum, len(values))
		}

		rule, err := almanac.NewRangeRule(values[0], values[1], values[2])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lr.lineNum)
		}

		rules = append(rules, rule)
	}

	table, err := almanac.NewStageTable(from, to, rules...)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", lr.lineNum)
	}

	return table, nil
}

func parseInts(s string) ([]int64, error) {
	fields := strings.Fields(s)
	res := make([]int64, 0, len(fields))

	for _, field := range fields {
		value, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "invalid number %q", field)
		}

		res = append(res, value)
	}

	return res, nil
}

// SeedRanges reads seeds as start and length pairs and returns the matching inclusive ranges sorted by start.
func SeedRanges(seeds []int64) ([]search.SeedRange, error) {
	if len(seeds)%2 != 0 {
		return nil, errors.Wrapf(ErrOddSeedPairs, "got %d values", len(seeds))
	}

	ranges := make([]search.SeedRange, 0, len(seeds)/2)

	for i := 0; i < len(seeds); i += 2 {
		seedRange, err := search.NewSeedRange(seeds[i], seeds[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d", i/2)
		}

		ranges = append(ranges, seedRange)
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	return ranges, nil
}
