package python

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hail-kang/faex/core/driver"
	"github.com/hail-kang/faex/core/report"
)

func analyzeFixture(t *testing.T, path string, opts driver.Options) report.Result {
	t.Helper()
	result, err := NewDriver().Analyze(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Analyze %s: %v", path, err)
	}
	return result
}

func endpointByFunction(t *testing.T, result report.Result, name string) report.Endpoint {
	t.Helper()
	for _, ep := range result.Endpoints {
		if ep.Function == name {
			return ep
		}
	}
	t.Fatalf("endpoint %q not found in result", name)
	return report.Endpoint{}
}

func TestAnalyze_RoutersDirectory(t *testing.T) {
	result := analyzeFixture(t, filepath.Join("testdata", "routers"), driver.Options{MaxDepth: 3})

	if len(result.Endpoints) != 2 {
		t.Fatalf("found %d endpoints, want 2", len(result.Endpoints))
	}

	action := endpointByFunction(t, result, "perform_action")
	if action.Method != "POST" || action.Path != "/users/{user_id}/action" {
		t.Errorf("endpoint = %s %s, want POST /users/{user_id}/action", action.Method, action.Path)
	}

	undeclared := action.Undeclared()
	if len(undeclared) != 1 || undeclared[0].Class != "Forbidden" {
		t.Fatalf("undeclared = %v, want [Forbidden]", undeclared)
	}
	if undeclared[0].InFunction != "check" {
		t.Errorf("Forbidden attributed to %q, want check", undeclared[0].InFunction)
	}
	if unused := action.UnusedDeclarations(); len(unused) != 0 {
		t.Errorf("unused = %v, want none (Unauthorized is declared and detected)", unused)
	}

	health := endpointByFunction(t, result, "health_check")
	if len(health.Detected) != 0 {
		t.Errorf("health_check detected = %v, want none", health.Detected)
	}
}

func TestAnalyze_BrokenFileIsNonFatal(t *testing.T) {
	result := analyzeFixture(t, filepath.Join("testdata", "routers"), driver.Options{MaxDepth: 3})

	if len(result.Errors) != 1 {
		t.Fatalf("got %d file errors, want 1: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "syntax error") || !strings.Contains(result.Errors[0], "broken.py") {
		t.Errorf("error = %q, want a syntax error naming broken.py", result.Errors[0])
	}
}

func TestAnalyze_DepthZeroSkipsTransitive(t *testing.T) {
	result := analyzeFixture(t, filepath.Join("testdata", "routers"), driver.Options{MaxDepth: 0})

	action := endpointByFunction(t, result, "perform_action")
	if len(action.Detected) != 1 || action.Detected[0].Class != "Unauthorized" {
		t.Fatalf("detected = %v, want only the direct Unauthorized raise", action.Detected)
	}
	if len(action.Undeclared()) != 0 {
		t.Errorf("undeclared = %v, want none at depth 0", action.Undeclared())
	}
}

func TestAnalyze_IgnoreSetRemovesBeforeAttachment(t *testing.T) {
	result := analyzeFixture(t, filepath.Join("testdata", "routers"), driver.Options{
		MaxDepth: 3,
		Ignore:   []string{"Forbidden"},
	})

	action := endpointByFunction(t, result, "perform_action")
	for _, occ := range action.Detected {
		if occ.Class == "Forbidden" {
			t.Errorf("ignored class Forbidden still attached: %+v", occ)
		}
	}
	if result.HasIssues() {
		t.Error("result should have no issues with Forbidden ignored")
	}
}

func TestAnalyze_SingleFile(t *testing.T) {
	result := analyzeFixture(t, filepath.Join("testdata", "routers", "sample.py"), driver.Options{MaxDepth: 3})

	if len(result.Endpoints) != 2 {
		t.Fatalf("found %d endpoints, want 2", len(result.Endpoints))
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v, want none for a clean file", result.Errors)
	}
}

func TestAnalyze_CrossFileCollision(t *testing.T) {
	result := analyzeFixture(t, filepath.Join("testdata", "collision"), driver.Options{MaxDepth: 3})

	// a.py and b.py both define helper(); registration follows walk
	// order, so b.py wins for every endpoint regardless of file. This
	// pins the name-only resolution approximation as current behavior.
	for _, name := range []string{"first", "second"} {
		ep := endpointByFunction(t, result, name)
		if len(ep.Detected) != 1 || ep.Detected[0].Class != "BetaError" {
			t.Errorf("%s detected = %v, want [BetaError]", name, ep.Detected)
		}
	}
}

func TestAnalyze_NonexistentPath(t *testing.T) {
	_, err := NewDriver().Analyze(context.Background(), filepath.Join("testdata", "missing"), driver.Options{})
	if err == nil {
		t.Fatal("Analyze on a nonexistent path should error")
	}
}
