package scheduler

import "testing"

func TestHasFlag(t *testing.T) {
	tests := []struct {
		name string
		args string
		flag string
		want bool
	}{
		{"empty", "", "-o", false},
		{"standalone", "-q batch -o /logs/out", "-o", true},
		{"at end", "-q batch -e", "-e", true},
		{"inside value", "-l nodes=1:ppn=4-o", "-o", false},
		{"other flag", "-q batch -j oe", "-o", false},
		{"quoted value", `-N "a -o b"`, "-o", false},
		{"unbalanced quotes fall back", `-v "X=1 -o `, "-o", true},
		{"after unquoted semicolon", "-v A=1;B=2 -o /logs", "-o", true},
		{"after unquoted pipe", "-l select=1|2 -e /logs", "-e", true},
		{"operator without flag", "-v A=1;B=2 -j oe", "-o", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasFlag(tt.args, tt.flag); got != tt.want {
				t.Errorf("HasFlag(%q, %q) = %v; want %v", tt.args, tt.flag, got, tt.want)
			}
		})
	}
}

func TestRedirectFlags(t *testing.T) {
	out, errf := redirectFlags("", "/b/batchscript_x.sh")
	if out != "-o /b/batchscript_x.sh.o" || errf != "-e /b/batchscript_x.sh.e" {
		t.Errorf("redirectFlags defaults = %q, %q", out, errf)
	}

	out, errf = redirectFlags("-o /logs", "/b/batchscript_x.sh")
	if out != "" || errf != "-e /b/batchscript_x.sh.e" {
		t.Errorf("redirectFlags with -o = %q, %q", out, errf)
	}

	out, errf = redirectFlags("-e /logs -o /logs", "/b/batchscript_x.sh")
	if out != "" || errf != "" {
		t.Errorf("redirectFlags with -o and -e = %q, %q", out, errf)
	}
}
