package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"bucket and key", "s3://datasets/2024/cases.csv", "datasets", "2024/cases.csv", false},
		{"default bucket", "s3:///cases.csv", "", "cases.csv", false},
		{"missing key", "s3://datasets", "", "", true},
		{"trailing slash only", "s3://datasets/", "", "", true},
		{"not s3", "/tmp/cases.csv", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestIsURI(t *testing.T) {
	assert.True(t, IsURI("s3://b/k"))
	assert.False(t, IsURI("cases.csv"))
	assert.False(t, IsURI("https://example.com/cases.csv"))
}
