package observability

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/pipeline"
)

func TestPrintBatchResult(t *testing.T) {
	id := uuid.New()
	res := &pipeline.BatchResult{
		Discovered: 3,
		Succeeded:  2,
		Failed:     1,
		Failures: []pipeline.EntryFailure{
			{EntryID: id, Stage: pipeline.StageValidating, Err: errors.New("missing required field")},
		},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintBatchResult(res)

	out := buf.String()
	assert.Contains(t, out, "discovered=3 succeeded=2 failed=1")
	assert.Contains(t, out, id.String())
	assert.Contains(t, out, "validating")
	assert.Contains(t, out, "missing required field")
}

func TestPrintBatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBatchResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEntries(nil)
	assert.Contains(t, buf.String(), "No entries")

	buf.Reset()
	e := db.CalendarEntry{
		ID: uuid.New(), ContentType: "static_post", Platform: "instagram",
		Topic: "Launch", Status: db.StatusScheduled,
	}
	NewPrinter(&buf).PrintEntries([]db.CalendarEntry{e})

	out := buf.String()
	assert.Contains(t, out, "1 entries awaiting")
	assert.Contains(t, out, e.ID.String())
	assert.Contains(t, out, `topic="Launch"`)
}

func TestNewLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.True(t, NewLogger().IsLevelEnabled(logrus.DebugLevel))

	t.Setenv("LOG_LEVEL", "error")
	assert.False(t, NewLogger().IsLevelEnabled(logrus.InfoLevel))

	t.Setenv("LOG_LEVEL", "")
	assert.True(t, NewLogger().IsLevelEnabled(logrus.InfoLevel))
}
