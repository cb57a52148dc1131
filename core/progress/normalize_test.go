package progress

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  float64
	}{
		{name: "absent", field: Absent(), want: 0},
		{name: "empty", field: Text(""), want: 0},
		{name: "blank", field: Text("   "), want: 0},
		{name: "non numeric", field: Text("abc"), want: 0},
		{name: "integer text", field: Text("12"), want: 12},
		{name: "decimal text", field: Text("12.5"), want: 12.5},
		{name: "negative", field: Text("-3"), want: -3},
		{name: "leading dot", field: Text(".5"), want: .5},
		{name: "exponent", field: Text("1e2"), want: 100},
		{name: "dangling exponent", field: Text("1e"), want: 1},
		{name: "leading whitespace", field: Text("  7"), want: 7},
		{name: "numeric prefix", field: Text("12abc"), want: 12},
		{name: "numeric prefix with unit", field: Text("40 lectures"), want: 40},
		{name: "hex is not parsed", field: Text("0x1A"), want: 0},
		{name: "infinity", field: Text("Infinity"), want: 0},
		{name: "out of range", field: Text("1e400"), want: 0},
		{name: "number", field: Number(42), want: 42},
		{name: "fractional number", field: Number(3.25), want: 3.25},
		{name: "NaN number", field: Number(math.NaN()), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.field))
		})
	}
}

func TestField_UnmarshalJSON(t *testing.T) {
	var m Metrics
	err := json.Unmarshal([]byte(`{
		"target_sem": "40",
		"lectures_planned_month": 12,
		"lectures_conducted_month": 10.5,
		"lectures_cumulative": null,
		"syllabus_completed_month": ""
	}`), &m)
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, Text("40"), m.TargetSem)
	assert.Equal(t, Text("12"), m.LecturesPlannedMonth)
	assert.Equal(t, Text("10.5"), m.LecturesConductedMonth)
	assert.True(t, m.LecturesCumulative.IsAbsent())
	assert.Equal(t, Text(""), m.SyllabusCompletedMonth)
	assert.True(t, m.PracticalTotal.IsAbsent())

	assert.Error(t, json.Unmarshal([]byte(`{"practical_total": true}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"practical_total": {}}`), &m))
}

func TestField_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Field `json:"a"`
		B Field `json:"b"`
	}{A: Number(5), B: Absent()})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a": "5", "b": null}`, string(data))
}

func TestField_Scan(t *testing.T) {
	var f Field
	assert.NoError(t, f.Scan([]byte("6")))
	assert.Equal(t, Text("6"), f)

	assert.NoError(t, f.Scan(nil))
	assert.True(t, f.IsAbsent())

	val, err := Text("8").Value()
	assert.NoError(t, err)
	assert.Equal(t, "8", val)

	val, err = Absent().Value()
	assert.NoError(t, err)
	assert.Nil(t, val)
}
