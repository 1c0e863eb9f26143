package output

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
)

func TestPrettyFormatter_Fixture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PrettyFormatter{}).Format(&buf, fixtureSummary()))

	out := buf.String()
	assert.Contains(t, out, "/data")
	assert.Contains(t, out, "File Type Distribution")
	assert.Contains(t, out, "Documents")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "2.1 KiB")
	assert.Contains(t, out, "Unknown Extensions")
	assert.Contains(t, out, ".unknownext")
	assert.Contains(t, out, "Use -o plain")
}

func TestPrettyFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PrettyFormatter{}).Format(&buf, emptySummary()))

	out := buf.String()
	assert.Contains(t, out, "No files found in /empty")
	assert.NotContains(t, out, "File Type Distribution")
}

func TestPrettyFormatter_ManyUnknown(t *testing.T) {
	s := analysis.NewState("/data")
	for i := 0; i < maxPrettyUnknown+3; i++ {
		s.Record(1, fmt.Sprintf(".x%02d", i))
	}
	var buf bytes.Buffer
	require.NoError(t, (&PrettyFormatter{}).Format(&buf, s.Summary()))

	out := buf.String()
	assert.Contains(t, out, ".x00")
	assert.NotContains(t, out, ".x12")
	assert.Contains(t, out, "and 3 more in "+UnknownReportFile)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m 30s"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.d))
		})
	}
}
