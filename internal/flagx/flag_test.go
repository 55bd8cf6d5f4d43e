package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "http://x", "-z", "1"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://x"},
		},
		{
			name:    "equals form",
			args:    []string{"-i=5", "-q=1"},
			allowed: []string{"-i"},
			want:    []string{"-i=5"},
		},
		{
			name:    "flag followed by flag has no value",
			args:    []string{"-a", "-i", "3"},
			allowed: []string{"-a", "-i"},
			want:    []string{"-a", "-i", "3"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "positional values are skipped",
			args:    []string{"run", "-d", "db.sqlite", "extra"},
			allowed: []string{"-d"},
			want:    []string{"-d", "db.sqlite"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "a.json", ConfigFileFlag([]string{"-c", "a.json", "-a", "x"}))
	assert.Equal(t, "b.yaml", ConfigFileFlag([]string{"-config=b.yaml"}))
	assert.Equal(t, "c.yml", ConfigFileFlag([]string{"--config", "c.yml"}))
	assert.Equal(t, "", ConfigFileFlag([]string{"-a", "x"}))
}
