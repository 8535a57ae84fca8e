package telemetry

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRegisterDBPoolMetrics(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(7)

	reader, mp := newManualMeter(t)
	reg, err := RegisterDBPoolMetrics(mp.Meter("test"), db)
	require.NoError(t, err)
	defer func() { _ = reg.Unregister() }()

	data := collect(t, reader)

	maxOpen := data["db_pool_connections_max"].(metricdata.Gauge[int64])
	require.Len(t, maxOpen.DataPoints, 1)
	assert.Equal(t, int64(7), maxOpen.DataPoints[0].Value)

	conns := data["db_pool_connections"].(metricdata.Gauge[int64])
	assert.Len(t, conns.DataPoints, 2)
}

func TestRegisterDBPoolMetrics_NilMeter(t *testing.T) {
	_, err := RegisterDBPoolMetrics(nil, nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}
