package httpkit

import (
	"net/http"
	"testing"
)

func TestMountAPI(t *testing.T) {
	cases := map[string]struct {
		version    string
		mw         []func(http.Handler) http.Handler
		wantPrefix string
		wantMW     int
	}{
		"plain version":        {"v2", []func(http.Handler) http.Handler{noopMW, noopMW}, "/api/v2", 2},
		"leading slash peeled": {"/v3", nil, "/api/v3", 0},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newSpyRouter()
			hits := 0

			MountAPI(r, tc.version, tc.mw, func(Router) { hits++ })

			if len(r.prefixes) != 1 || r.prefixes[0] != tc.wantPrefix {
				t.Fatalf("prefixes = %v, want [%s]", r.prefixes, tc.wantPrefix)
			}
			if hits != 1 {
				t.Fatalf("mount closure ran %d times", hits)
			}
			switch tc.wantMW {
			case 0:
				if len(r.mwLens) != 0 {
					t.Fatalf("Use called for empty middleware: %v", r.mwLens)
				}
			default:
				if len(r.mwLens) != 1 || r.mwLens[0] != tc.wantMW {
					t.Fatalf("mw applications = %v, want one Use with %d", r.mwLens, tc.wantMW)
				}
			}
		})
	}
}

func TestMountAPIV1(t *testing.T) {
	r := newSpyRouter()
	hits := 0

	MountAPIV1(r, []func(http.Handler) http.Handler{noopMW}, func(Router) { hits++ })

	if len(r.prefixes) != 1 || r.prefixes[0] != "/api/v1" {
		t.Fatalf("prefixes = %v", r.prefixes)
	}
	if hits != 1 {
		t.Fatalf("mount closure ran %d times", hits)
	}
	if len(r.mwLens) != 1 || r.mwLens[0] != 1 {
		t.Fatalf("mw applications = %v", r.mwLens)
	}
}
