package nba

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedResponse = errors.New("malformed stats response")

// resultSet is the tabular payload the stats API wraps every endpoint in.
type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// apiResponse handles both response shapes the stats API serves: most
// endpoints return a "resultSets" array, but some games come back with a
// single "resultSet" object instead.
type apiResponse struct {
	ResultSets []resultSet `json:"resultSets"`
	ResultSet  *resultSet  `json:"resultSet"`
}

func parseResponse(body []byte) ([]resultSet, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if len(resp.ResultSets) > 0 {
		return resp.ResultSets, nil
	}
	if resp.ResultSet != nil {
		return []resultSet{*resp.ResultSet}, nil
	}
	return nil, fmt.Errorf("%w: neither resultSets nor resultSet present", ErrMalformedResponse)
}

func findSet(sets []resultSet, name string) (resultSet, error) {
	for _, s := range sets {
		if s.Name == name {
			return s, nil
		}
	}
	return resultSet{}, fmt.Errorf("%w: missing result set %q", ErrMalformedResponse, name)
}

// table gives column-name access to a resultSet's rows. Cell values arrive as
// json-decoded any (float64, string or nil); accessors coerce leniently since
// the feed is inconsistent about numeric types and nulls.
type table struct {
	index  map[string]int
	rowSet [][]any
}

func newTable(rs resultSet) table {
	index := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		index[h] = i
	}
	return table{index: index, rowSet: rs.RowSet}
}

func (t table) len() int { return len(t.rowSet) }

func (t table) cell(row int, col string) any {
	i, ok := t.index[col]
	if !ok || i >= len(t.rowSet[row]) {
		return nil
	}
	return t.rowSet[row][i]
}

func (t table) str(row int, col string) string {
	switch v := t.cell(row, col).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (t table) int64(row int, col string) int64 {
	switch v := t.cell(row, col).(type) {
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func (t table) int(row int, col string) int {
	return int(t.int64(row, col))
}

func (t table) float(row int, col string) float64 {
	switch v := t.cell(row, col).(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// minutes parses the box score MIN column, which shows up as null, a float,
// or an "MM:SS" string depending on the endpoint's mood.
func (t table) minutes(row int, col string) float64 {
	switch v := t.cell(row, col).(type) {
	case float64:
		return v
	case string:
		if m, s, found := strings.Cut(v, ":"); found {
			mins, err1 := strconv.ParseFloat(m, 64)
			secs, err2 := strconv.ParseFloat(s, 64)
			if err1 == nil && err2 == nil {
				return mins + secs/60
			}
			return 0
		}
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
