package neo4j

import (
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestConfigApplyOverridesPoolSettings(t *testing.T) {
	dc := neo4j.Config{MaxConnectionPoolSize: 100, ConnectionAcquisitionTimeout: time.Minute}

	Config{MaxPoolSize: 8, AcquireTimeout: 3 * time.Second}.apply(&dc)

	assert.Equal(t, 8, dc.MaxConnectionPoolSize)
	assert.Equal(t, 3*time.Second, dc.ConnectionAcquisitionTimeout)
}

func TestConfigApplyKeepsDriverDefaults(t *testing.T) {
	dc := neo4j.Config{MaxConnectionPoolSize: 100, ConnectionAcquisitionTimeout: time.Minute}

	Config{}.apply(&dc)

	assert.Equal(t, 100, dc.MaxConnectionPoolSize)
	assert.Equal(t, time.Minute, dc.ConnectionAcquisitionTimeout)
}
