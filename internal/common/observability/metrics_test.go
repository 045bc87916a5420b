package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilObservabilityIsNoOp(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		o.RecordRequest(context.Background(), "200", time.Millisecond)
		o.RecordTranslation(context.Background(), "translated")
		o.Shutdown()
	})
}

func TestNewRecords(t *testing.T) {
	o := New("formfill-test")
	defer o.Shutdown()

	assert.NotPanics(t, func() {
		o.RecordRequest(context.Background(), "400", 3*time.Millisecond)
		o.RecordTranslation(context.Background(), "failed")
	})
}
