package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"30s"`, want: 30 * time.Second},
		{name: "compound string", in: `"1h30m"`, want: 90 * time.Minute},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		TTL      Duration `yaml:"ttl"`
		Shutdown Duration `yaml:"shutdown"`
	}
	err := yaml.Unmarshal([]byte("ttl: 45s\nshutdown: 2000000000\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.TTL.Duration)
	assert.Equal(t, 2*time.Second, cfg.Shutdown.Duration)

	err = yaml.Unmarshal([]byte("ttl: [1, 2]\n"), &cfg)
	require.Error(t, err)

	err = yaml.Unmarshal([]byte("ttl: later\n"), &cfg)
	require.Error(t, err)
}
