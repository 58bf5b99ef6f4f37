package dirctx

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	testDomain   = "0199039d-8b5e-7a2f-b7c4-1a2b3c4d5e6f"
	testCategory = "0199c24c-b330-79ee-9b25-4bb80926868f"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir temp: %v", err)
	}
	return tmp
}

func TestValidateValidContext(t *testing.T) {
	dc := &DirectoryContext{
		Version:    FileVersion,
		DomainID:   testDomain,
		CategoryID: testCategory,
		ServerURL:  "http://localhost:8000/api/v1",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := dc.Validate(); err != nil {
		t.Fatalf("expected valid context, got error: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		ctx  DirectoryContext
	}{
		{"wrong_version", DirectoryContext{Version: "999", DomainID: testDomain}},
		{"missing_domain", DirectoryContext{Version: FileVersion, CategoryID: testCategory}},
		{"bad_domain", DirectoryContext{Version: FileVersion, DomainID: "legal"}},
		{"bad_category", DirectoryContext{Version: FileVersion, DomainID: testDomain, CategoryID: "contracts"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.ctx.Validate(); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestReadMissingReturnsNil(t *testing.T) {
	chdirTemp(t)
	ctx, err := Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx != nil {
		t.Fatalf("expected nil context when .daleel missing")
	}
}

func TestWriteAndRead_RoundTrip(t *testing.T) {
	tmp := chdirTemp(t)
	now := time.Now().UTC()
	dc := &DirectoryContext{
		Version:    FileVersion,
		DomainID:   testDomain,
		CategoryID: testCategory,
		ServerURL:  "http://example/api/v1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := Write(dc); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmp, FileName)); err != nil {
		t.Fatalf(".daleel not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, FileName+".tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}

	got, err := Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got == nil {
		t.Fatalf("expected non-nil context")
	}
	if got.DomainID != dc.DomainID || got.CategoryID != dc.CategoryID || got.Version != FileVersion {
		t.Fatalf("mismatch after round trip: %+v vs %+v", got, dc)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Fatalf("unexpected path %q", path)
	}

	if err := Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := Remove(); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	if got, _ := Read(); got != nil {
		t.Fatalf("expected nil after remove")
	}
}

func TestWriteRejectsInvalid(t *testing.T) {
	chdirTemp(t)
	dc := &DirectoryContext{
		Version: "bad",
	}
	if err := Write(dc); err == nil {
		t.Fatalf("expected error writing invalid context")
	}
}

func TestReadCorruptedJSON(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile(FileName, []byte("{not-json}"), 0644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	if ctx, err := Read(); err == nil || ctx != nil {
		t.Fatalf("expected error and nil context for corrupt JSON")
	}
}

func TestReadInvalidVersion(t *testing.T) {
	chdirTemp(t)
	payload := []byte("{\n  \"version\": \"999\",\n  \"domain_id\": \"" + testDomain + "\"\n}\n")
	if err := os.WriteFile(FileName, payload, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ctx, err := Read(); err == nil || ctx != nil {
		t.Fatalf("expected error and nil context for invalid version")
	}
}

func TestResolveScope(t *testing.T) {
	ctx := ScopeRef{DomainID: testDomain, CategoryID: testCategory}

	// explicit domain wins and drops the context category
	other := "11111111-1111-4111-8111-111111111111"
	if got := ResolveScope(ScopeRef{DomainID: other}, ctx); got.DomainID != other || got.CategoryID != "" {
		t.Fatalf("explicit domain should win, got=%+v", got)
	}
	// explicit category keeps the context domain
	if got := ResolveScope(ScopeRef{CategoryID: other}, ctx); got.DomainID != testDomain || got.CategoryID != other {
		t.Fatalf("explicit category should override, got=%+v", got)
	}
	// fallback to context
	if got := ResolveScope(ScopeRef{}, ctx); got != ctx {
		t.Fatalf("context should be used, got=%+v", got)
	}
	// neither is fine: unscoped
	if got := ResolveScope(ScopeRef{}, ScopeRef{}); !got.IsEmpty() {
		t.Fatalf("expected empty scope, got=%+v", got)
	}
}

func TestScopeRefHelpers(t *testing.T) {
	if !(ScopeRef{}).IsEmpty() {
		t.Fatalf("empty ref should be empty")
	}
	if (ScopeRef{CategoryID: "c"}).IsEmpty() {
		t.Fatalf("non-empty ref should not be empty")
	}
	if got := (ScopeRef{DomainID: "d", CategoryID: "c"}).String(); got != "d/c" {
		t.Fatalf("unexpected string %q", got)
	}
	if got := (ScopeRef{}).String(); got != "<all>" {
		t.Fatalf("unexpected string %q", got)
	}
	var nilCtx *DirectoryContext
	if !nilCtx.Scope().IsEmpty() {
		t.Fatalf("nil context should give an empty scope")
	}
}
