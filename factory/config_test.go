package factory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/factory"
	"github.com/warp/leave-engine/leave"
)

func TestParseConfig_FullDocument(t *testing.T) {
	cfg, err := factory.ParseConfig(`{
		"schedule": "six_day_half_saturday",
		"allowances": {
			"wedding_self": 5,
			"bereavement_close": 2.5
		}
	}`)
	require.NoError(t, err)

	assert.Equal(t, leave.ScheduleSixDayHalfSat, cfg.Schedule)
	assert.True(t, cfg.Allowances.Allowance(leave.LeaveWeddingSelf).Equal(leave.NewDaysFromInt(5)))
	assert.True(t, cfg.Allowances.Allowance(leave.LeaveBereavementClose).Equal(leave.NewDays(2.5)))

	// Types absent from a custom table have no allowance.
	assert.True(t, cfg.Allowances.Allowance(leave.LeaveWeddingChild).IsZero())
}

func TestParseConfig_EmptyDocument_Defaults(t *testing.T) {
	cfg, err := factory.ParseConfig(`{}`)
	require.NoError(t, err)

	assert.Equal(t, leave.ScheduleFiveDay, cfg.Schedule)
	assert.True(t, cfg.Allowances.Allowance(leave.LeaveWeddingSelf).Equal(leave.NewDaysFromInt(3)))
	assert.True(t, cfg.Allowances.Allowance(leave.LeaveBereavementDistant).Equal(leave.NewDaysFromInt(1)))
}

func TestParseConfig_InvalidJSON(t *testing.T) {
	_, err := factory.ParseConfig(`{not json`)
	assert.Error(t, err)
}

func TestParseConfig_UnknownSchedule(t *testing.T) {
	_, err := factory.ParseConfig(`{"schedule": "four_day"}`)
	assert.ErrorIs(t, err, leave.ErrUnknownSchedule)
}

func TestParseConfig_UnknownLeaveType(t *testing.T) {
	_, err := factory.ParseConfig(`{"allowances": {"sabbatical": 30}}`)
	assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)
}

func TestParseConfig_NegativeAllowance(t *testing.T) {
	_, err := factory.ParseConfig(`{"allowances": {"wedding_self": -1}}`)
	assert.Error(t, err)
}

func TestLoadConfigFile_EmptyPath_Defaults(t *testing.T) {
	cfg, err := factory.LoadConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, leave.ScheduleFiveDay, cfg.Schedule)
}

func TestLoadConfigFile_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schedule": "six_day"}`), 0o644))

	cfg, err := factory.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, leave.ScheduleSixDay, cfg.Schedule)
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	_, err := factory.LoadConfigFile("/nonexistent/policy.json")
	assert.Error(t, err)
}
