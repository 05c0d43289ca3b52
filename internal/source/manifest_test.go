package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()

	require.Equal(t, "../database/mock_tribes.csv", m.Tribes)
	require.Equal(t, "../src/talking_points/remote_work_professions.csv", m.Professions)
	require.Len(t, m.TalkingPoints, 5)
	require.Equal(t, "../src/talking_points/tech_it_talking_points.csv", m.TalkingPoints[0])
	require.Equal(t, "../src/talking_points/talking_points.csv", m.TalkingPoints[4])
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Manifest
		wantErr bool
	}{
		{
			name:  "empty keeps defaults",
			input: "",
			want:  DefaultManifest(),
		},
		{
			name:  "override tribes only",
			input: "tribes: data/tribes.csv\n",
			want: Manifest{
				Tribes:        "data/tribes.csv",
				Professions:   DefaultManifest().Professions,
				TalkingPoints: DefaultManifest().TalkingPoints,
			},
		},
		{
			name: "replace talking point list",
			input: `professions: p.csv
talking_points:
  - a.csv
  - b.csv
`,
			want: Manifest{
				Tribes:        DefaultManifest().Tribes,
				Professions:   "p.csv",
				TalkingPoints: []string{"a.csv", "b.csv"},
			},
		},
		{
			name:    "unknown key",
			input:   "tribe: x.csv\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	p := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(p, []byte("tribes: t.csv\n"), 0o644))

	m, err := LoadManifest(p)
	require.NoError(t, err)
	require.Equal(t, "t.csv", m.Tribes)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
