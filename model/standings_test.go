package model

import (
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingsRowFromPositionalArray(t *testing.T) {
	raw := `[{"user_id":7,"username":"alice"},[101,40,false],[102,60,true]]`

	var row StandingsRow
	require.NoError(t, json.Unmarshal([]byte(raw), &row))

	assert.Equal(t, uint64(7), row.User.UserID)
	assert.Equal(t, "alice", row.User.Username)
	require.Len(t, row.Cells, 2)
	assert.Equal(t, uint64(101), row.Cells[0].SolutionID)
	assert.Equal(t, 40, row.Cells[0].Score)
	assert.False(t, row.Cells[0].Solved)
	assert.True(t, row.Cells[1].Solved)
	assert.Equal(t, 100, row.TotalScore)
}

func TestStandingsCellNullMeansAbsent(t *testing.T) {
	var cell StandingsCell
	require.NoError(t, json.Unmarshal([]byte(`null`), &cell))
	assert.False(t, cell.Present)

	require.NoError(t, json.Unmarshal([]byte(`[null,0,false]`), &cell))
	assert.False(t, cell.Present)
}

func TestStandingsRowAbsentCellsDoNotScore(t *testing.T) {
	raw := `[{"user_id":1,"username":"bob"},null,[5,30,true],null]`

	var row StandingsRow
	require.NoError(t, json.Unmarshal([]byte(raw), &row))

	require.Len(t, row.Cells, 3)
	assert.False(t, row.Cells[0].Present)
	assert.True(t, row.Cells[1].Present)
	assert.False(t, row.Cells[2].Present)
	assert.Equal(t, 30, row.TotalScore)
}

func TestStandingsRowRejectsNonArray(t *testing.T) {
	var row StandingsRow
	assert.Error(t, json.Unmarshal([]byte(`{"user":"alice"}`), &row))
}

func TestStandingsTableUnmarshal(t *testing.T) {
	raw := `{
		"tasks":[{"id":1,"type":"code","title":"A + B"}],
		"table":[
			[{"user_id":1,"username":"alice"},[11,100,true]],
			[{"user_id":2,"username":"bob"},null]
		]
	}`

	var s Standings
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, PageTypeCode, s.Tasks[0].Type)
	require.Len(t, s.Table, 2)
	assert.Equal(t, 100, s.Table[0].TotalScore)
	assert.Equal(t, 0, s.Table[1].TotalScore)
}
