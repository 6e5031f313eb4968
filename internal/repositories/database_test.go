package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type capturedLog struct {
	lines []string
}

func (c *capturedLog) Printf(format string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func TestGORMLogger_IgnoresRecordNotFound(t *testing.T) {
	out := &capturedLog{}
	l := newGORMLogger(out)
	query := func() (string, int64) { return "SELECT * FROM items WHERE id = 'missing'", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, out.lines)

	l.Trace(context.Background(), time.Now(), query, assert.AnError)
	assert.Len(t, out.lines, 1)
}

