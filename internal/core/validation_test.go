package core

import (
	"errors"
	"reflect"
	"testing"

	"github.com/brewsandbytes/seeder/internal/csv"
)

func TestValidateRow(t *testing.T) {
	specs := MustGet(TableTalkingPoints).FieldSpecs

	tests := []struct {
		name      string
		values    map[string]string
		wantField string
	}{
		{"complete", map[string]string{"id": "tp1", "secondary_profession": "Developer"}, ""},
		{"optional columns may be empty", map[string]string{"id": "tp1", "secondary_profession": "Developer", "text": ""}, ""},
		{"missing id", map[string]string{"id": "", "secondary_profession": "Developer"}, "id"},
		{"missing label", map[string]string{"id": "tp1"}, "secondary_profession"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRow(specs, csv.Row{Line: 2, Values: tt.values})
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateRow() error = %v", err)
				}
				return
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateRow() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestMissingColumns(t *testing.T) {
	specs := MustGet(TableProfessions).FieldSpecs

	got := MissingColumns(specs, []string{"main_group", "fun_labels"})
	if !reflect.DeepEqual(got, []string{"secondary_label"}) {
		t.Errorf("MissingColumns() = %v, want [secondary_label]", got)
	}

	if got := MissingColumns(specs, []string{"secondary_label", "main_group"}); got != nil {
		t.Errorf("MissingColumns() = %v, want nil", got)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"007", 7, false},
		{"12abc", 12, false},
		{"3.9", 3, false},
		{"-5", -5, false},
		{"+8", 8, false},
		{"abc", 0, true},
		{"-", 0, true},
		{"", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		got, err := parseLeadingInt(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLeadingInt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLeadingInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFlag(t *testing.T) {
	tests := map[string]bool{
		"true":  true,
		"TRUE":  true,
		"True":  true,
		"false": false,
		"1":     false,
		"yes":   false,
		"":      false,
		" true": false,
	}

	for in, want := range tests {
		if got := parseFlag(in); got != want {
			t.Errorf("parseFlag(%q) = %v, want %v", in, got, want)
		}
	}
}
