package resolver

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// fakeEnv builds a resolver whose file system and PATH are maps.
func fakeEnv(configured, projectDir, portableDir, goos string, files map[string]bool, path map[string]string) *Resolver {
	r := New(configured, projectDir, portableDir,
		WithFileExists(func(p string) bool { return files[p] }),
		WithLookPath(func(name string) (string, error) {
			if p, ok := path[name]; ok {
				return p, nil
			}
			return "", errors.New("not found")
		}),
	)
	r.GOOS = goos
	return r
}

func TestResolve_ConfiguredPathWins(t *testing.T) {
	// Everything else is also available; configured path must win.
	files := map[string]bool{
		filepath.Join("/proj", "yarn.lock"):                        true,
		filepath.Join("/proj", "node_modules", ".bin", "prettier"): true,
		filepath.Join("/tools", "prettier"):                        true,
	}
	path := map[string]string{"prettier": "/usr/bin/prettier", "yarn": "/usr/bin/yarn"}

	r := fakeEnv("/custom/prettier", "/proj", "/tools", "linux", files, path)
	cmd, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cmd.Origin != OriginConfigured {
		t.Errorf("expected configured origin, got %v", cmd.Origin)
	}
	if !reflect.DeepEqual(cmd.Argv, []string{"/custom/prettier"}) {
		t.Errorf("unexpected argv: %v", cmd.Argv)
	}
}

func TestResolve_ConfiguredPathWithSpaces(t *testing.T) {
	r := fakeEnv("npx prettier", "", "", "linux", nil, nil)
	cmd, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(cmd.Argv, []string{"npx", "prettier"}) {
		t.Errorf("expected split argv, got %v", cmd.Argv)
	}
}

func TestResolve_ProjectLocalBeatsPath(t *testing.T) {
	local := filepath.Join("/proj", "node_modules", ".bin", "prettier")
	files := map[string]bool{local: true}
	path := map[string]string{"prettier": "/usr/bin/prettier"}

	r := fakeEnv("", "/proj", "", "linux", files, path)
	cmd, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cmd.Origin != OriginProjectWrapper {
		t.Errorf("expected project wrapper origin, got %v", cmd.Origin)
	}
	if !reflect.DeepEqual(cmd.Argv, []string{local}) {
		t.Errorf("unexpected argv: %v", cmd.Argv)
	}
}

func TestResolve_LockfileWrapper(t *testing.T) {
	tests := []struct {
		lockfile string
		binary   string
		want     []string
	}{
		{"package-lock.json", "npx", []string{"/usr/bin/npx", "prettier"}},
		{"yarn.lock", "yarn", []string{"/usr/bin/yarn", "exec", "prettier"}},
		{"pnpm-lock.yaml", "pnpm", []string{"/usr/bin/pnpm", "exec", "prettier"}},
		{"bun.lockb", "bunx", []string{"/usr/bin/bunx", "prettier"}},
	}

	for _, tt := range tests {
		t.Run(tt.lockfile, func(t *testing.T) {
			files := map[string]bool{filepath.Join("/proj", tt.lockfile): true}
			path := map[string]string{tt.binary: "/usr/bin/" + tt.binary}

			r := fakeEnv("", "/proj", "", "linux", files, path)
			cmd, err := r.Resolve()
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !reflect.DeepEqual(cmd.Argv, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, cmd.Argv)
			}
		})
	}
}

func TestResolve_WrapperBinaryMissingSkipsTier(t *testing.T) {
	// Lockfile present but npx not installed: fall through to PATH.
	files := map[string]bool{filepath.Join("/proj", "package-lock.json"): true}
	path := map[string]string{"prettier": "/usr/bin/prettier"}

	r := fakeEnv("", "/proj", "", "linux", files, path)
	cmd, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cmd.Origin != OriginPath {
		t.Errorf("expected PATH origin, got %v", cmd.Origin)
	}
}

func TestResolve_PathBeatsPortable(t *testing.T) {
	files := map[string]bool{filepath.Join("/tools", "prettier"): true}
	path := map[string]string{"prettier": "/usr/bin/prettier"}

	r := fakeEnv("", "/proj", "/tools", "linux", files, path)
	cmd, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cmd.Origin != OriginPath {
		t.Errorf("expected PATH origin, got %v", cmd.Origin)
	}
}

func TestResolve_PortableFallback(t *testing.T) {
	portable := filepath.Join("/tools", "prettier")
	files := map[string]bool{portable: true}

	r := fakeEnv("", "/proj", "/tools", "linux", files, nil)
	cmd, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cmd.Origin != OriginPortable {
		t.Errorf("expected portable origin, got %v", cmd.Origin)
	}
	if !reflect.DeepEqual(cmd.Argv, []string{portable}) {
		t.Errorf("unexpected argv: %v", cmd.Argv)
	}
}

func TestResolve_WindowsNames(t *testing.T) {
	portable := filepath.Join("/tools", "prettier.cmd")
	files := map[string]bool{portable: true}

	r := fakeEnv("", "", "/tools", "windows", files, nil)
	cmd, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(cmd.Argv, []string{portable}) {
		t.Errorf("expected .cmd candidate, got %v", cmd.Argv)
	}
}

func TestResolve_NotFoundListsLocations(t *testing.T) {
	r := fakeEnv("", "/proj", "/tools", "linux", nil, nil)

	_, err := r.Resolve()
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	msg := nf.Error()
	for _, want := range []string{"/proj", "PATH", "/tools"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in message %q", want, msg)
		}
	}
}
