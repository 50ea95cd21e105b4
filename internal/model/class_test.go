package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassTime(t *testing.T) {
	tests := []struct {
		value   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:30", 630, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"-1:00", 0, true},
		{"1030", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			minutes, err := ParseClassTime(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}

func TestClassInstance_Validate(t *testing.T) {
	valid := ClassInstance{Time: "10:00", Title: "Ballet", Duration: 60, Status: ClassStatusNormal}
	assert.NoError(t, valid.Validate())

	noTitle := valid
	noTitle.Title = "   "
	assert.Error(t, noTitle.Validate())

	badTime := valid
	badTime.Time = "25:00"
	assert.Error(t, badTime.Validate())

	negativeDuration := valid
	negativeDuration.Duration = -10
	assert.Error(t, negativeDuration.Validate())

	badStatus := valid
	badStatus.Status = "paused"
	assert.Error(t, badStatus.Validate())

	cancelled := valid
	cancelled.Status = ClassStatusCancelled
	assert.NoError(t, cancelled.Validate())
}

func TestClassInstance_Minutes(t *testing.T) {
	cls := ClassInstance{Time: "10:30", Title: "Ballet", Duration: 90, Status: ClassStatusNormal}
	assert.Equal(t, 630, cls.StartMinutes())
	assert.Equal(t, 720, cls.EndMinutes())

	noDuration := ClassInstance{Time: "10:30", Title: "Ballet", Status: ClassStatusNormal}
	assert.Equal(t, DefaultClassDuration, noDuration.DurationOrDefault())
	assert.Equal(t, 630+DefaultClassDuration, noDuration.EndMinutes())
}

func TestTemplateEntry_ClassInstance(t *testing.T) {
	entry := TemplateEntry{
		Weekday:   time.Monday,
		StartTime: "19:00",
		Title:     "Evening Jazz",
		Duration:  0,
	}

	cls := entry.ClassInstance()
	assert.Equal(t, ClassStatusNormal, cls.Status)
	assert.Equal(t, DefaultClassDuration, cls.Duration)
	assert.Equal(t, "19:00", cls.Time)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 30, DaysInMonth(2025, 9))
	assert.Equal(t, 31, DaysInMonth(2025, 8))
	assert.Equal(t, 28, DaysInMonth(2025, 2))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
}
