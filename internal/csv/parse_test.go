package csv

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []map[string]string
		wantNil bool
	}{
		{
			name:    "empty input",
			input:   "",
			wantNil: true,
		},
		{
			name:    "only blank lines",
			input:   "\n  \n\r\n",
			wantNil: true,
		},
		{
			name:  "header only",
			input: "id,name,description\n",
			want:  nil,
		},
		{
			name:  "quoted comma preserved",
			input: "id,name,description\n1,Test Tribe,\"A tribe, for testing\"\n",
			want: []map[string]string{
				{"id": "1", "name": "Test Tribe", "description": "A tribe, for testing"},
			},
		},
		{
			name:  "byte order mark stripped",
			input: "\uFEFFid,name\n7,Nomads\n",
			want: []map[string]string{
				{"id": "7", "name": "Nomads"},
			},
		},
		{
			name:  "crlf line endings",
			input: "id,name\r\n1,A\r\n2,B\r\n",
			want: []map[string]string{
				{"id": "1", "name": "A"},
				{"id": "2", "name": "B"},
			},
		},
		{
			name:  "blank lines anywhere are dropped",
			input: "\nid,name\n\n1,A\n   \n2,B\n\n",
			want: []map[string]string{
				{"id": "1", "name": "A"},
				{"id": "2", "name": "B"},
			},
		},
		{
			name:  "short row fills empty strings",
			input: "main_group,secondary_label,fun_labels\nTech,Developer\n",
			want: []map[string]string{
				{"main_group": "Tech", "secondary_label": "Developer", "fun_labels": ""},
			},
		},
		{
			name:  "extra fields ignored",
			input: "a,b\n1,2,3\n",
			want: []map[string]string{
				{"a": "1", "b": "2"},
			},
		},
		{
			name:  "headers and fields trimmed",
			input: " id , name \n 1 ,  Spaced Out  \n",
			want: []map[string]string{
				{"id": "1", "name": "Spaced Out"},
			},
		},
		{
			name:  "no type coercion",
			input: "id,try_these\nT1,True\n",
			want: []map[string]string{
				{"id": "T1", "try_these": "True"},
			},
		},
		{
			name:  "doubled quotes are not escapes",
			input: "id,text\n1,\"say \"\"hi\"\", ok\"\n",
			want: []map[string]string{
				{"id": "1", "text": "say hi, ok"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Parse(tt.input)
			if tt.wantNil {
				if rows != nil {
					t.Fatalf("Parse() = %v, want nil", rows)
				}
				return
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("Parse() returned %d rows, want %d", len(rows), len(tt.want))
			}
			for i, row := range rows {
				if !reflect.DeepEqual(row.Values, tt.want[i]) {
					t.Errorf("row %d = %v, want %v", i, row.Values, tt.want[i])
				}
			}
		})
	}
}

func TestParse_LineNumbers(t *testing.T) {
	rows := Parse("id,name\n\n1,A\r\n\r\n2,B\n")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Line != 3 || rows[1].Line != 5 {
		t.Errorf("lines = %d,%d, want 3,5", rows[0].Line, rows[1].Line)
	}
}

func TestRowGet(t *testing.T) {
	rows := Parse("id,name\n1,\n")
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Get("missing") != "" {
		t.Errorf("Get(missing) = %q, want empty", row.Get("missing"))
	}
	if row.Has("name") {
		t.Error("Has(name) = true for empty value")
	}
	if !row.Has("id") {
		t.Error("Has(id) = false")
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	lines := []string{
		"main_group,secondary_label,fun_labels",
		"Technology & IT,Software Developer,Code Conjurer",
		"Creative & Design,UI/UX Designer,Interface Imp",
		"Marketing & Sales,SEO Specialist,",
	}
	input := strings.Join(lines, "\n") + "\n"

	table := Decode(input)
	if !reflect.DeepEqual(table.Header, strings.Split(lines[0], ",")) {
		t.Fatalf("Header = %v", table.Header)
	}

	for i, row := range table.Rows {
		fields := make([]string, len(table.Header))
		for j, h := range table.Header {
			fields[j] = row.Get(h)
		}
		if got := strings.Join(fields, ","); got != lines[i+1] {
			t.Errorf("row %d round trip = %q, want %q", i, got, lines[i+1])
		}
	}
}

func TestParseReader(t *testing.T) {
	rows, err := ParseReader(strings.NewReader("id,name\n3,Wanderers\n"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Get("name") != "Wanderers" {
		t.Errorf("ParseReader() = %v", rows)
	}
}
