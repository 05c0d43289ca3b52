package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists the seed files of one run, relative to the Source.
type Manifest struct {
	Tribes        string   `yaml:"tribes" json:"tribes"`
	Professions   string   `yaml:"professions" json:"professions"`
	TalkingPoints []string `yaml:"talking_points" json:"talking_points"`
}

// DefaultManifest returns the file layout of the site repository, relative
// to the server directory the seeder is run from. Talking point files are
// read in order; the catch-all file comes last.
func DefaultManifest() Manifest {
	return Manifest{
		Tribes:      "../database/mock_tribes.csv",
		Professions: "../src/talking_points/remote_work_professions.csv",
		TalkingPoints: []string{
			"../src/talking_points/tech_it_talking_points.csv",
			"../src/talking_points/marketing_sales_talking_points.csv",
			"../src/talking_points/creative_design_talking_points.csv",
			"../src/talking_points/writing_content_talking_points.csv",
			"../src/talking_points/talking_points.csv",
		},
	}
}

// LoadManifest reads a YAML manifest from path.
// Keys left out of the file keep their default values.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a YAML manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (Manifest, error) {
	m := DefaultManifest()
	var raw Manifest

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}

	if raw.Tribes != "" {
		m.Tribes = raw.Tribes
	}
	if raw.Professions != "" {
		m.Professions = raw.Professions
	}
	if raw.TalkingPoints != nil {
		m.TalkingPoints = raw.TalkingPoints
	}
	return m, nil
}
