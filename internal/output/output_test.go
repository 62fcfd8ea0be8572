package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/nugetdeps/config"
	"github.com/git-pkgs/nugetdeps/internal/core"
	"github.com/git-pkgs/nugetdeps/internal/nuget"
	"github.com/git-pkgs/nugetdeps/internal/output"
)

func TestDependenciesText(t *testing.T) {
	t.Parallel()

	t.Run("should print no dependencies for an empty list", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		pkg := output.Package{Name: "Tiny", Version: "1.0.0"}

		// when
		err := output.Dependencies(&buf, output.FormatText, pkg, []core.Dependency{})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Dependencies of Tiny 1.0.0:\n  no dependencies\n", buf.String())
	})

	t.Run("should print the framework only when present", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		pkg := output.Package{Name: "Moq", Version: "4.20.70"}
		deps := []core.Dependency{
			{Name: "Castle.Core", VersionRequirement: "[5.1.1, )", TargetFramework: "net462"},
			{Name: "Plain", VersionRequirement: "1.0"},
		}

		// when
		err := output.Dependencies(&buf, output.FormatText, pkg, deps)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Dependencies of Moq 4.20.70:\n"+
			"  - Castle.Core [5.1.1, ) (net462)\n"+
			"  - Plain 1.0\n", buf.String())
	})
}

func TestDependenciesJSON(t *testing.T) {
	t.Parallel()

	t.Run("should include urls and purls", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		pkg := output.Package{Name: "Moq", Version: "4.20.70", URLs: nuget.NewURLs("")}
		deps := []core.Dependency{
			{Name: "Castle.Core", VersionRequirement: "[5.1.1, )", TargetFramework: "net462"},
		}

		// when
		err := output.Dependencies(&buf, output.FormatJSON, pkg, deps)

		// then
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, "Moq", doc["name"])
		urls := doc["urls"].(map[string]any)
		assert.Equal(t, "pkg:nuget/Moq@4.20.70", urls["purl"])
		assert.Equal(t, "https://www.nuget.org/api/v2/package/Moq/4.20.70", urls["download"])
		dep := doc["dependencies"].([]any)[0].(map[string]any)
		assert.Equal(t, "Castle.Core", dep["name"])
		assert.Equal(t, "[5.1.1, )", dep["version_requirement"])
		assert.Equal(t, "net462", dep["target_framework"])
		assert.Equal(t, "pkg:nuget/Castle.Core", dep["purl"])
	})

	t.Run("should render an empty array for no dependencies", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer

		// when
		err := output.Dependencies(&buf, output.FormatJSON, output.Package{Name: "Tiny", Version: "1.0"}, nil)

		// then
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"dependencies": []`)
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	t.Run("should accept known formats", func(t *testing.T) {
		t.Parallel()

		f, err := output.ParseFormat("json")
		require.NoError(t, err)
		assert.Equal(t, output.FormatJSON, f)
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		t.Parallel()

		_, err := output.ParseFormat("yaml")
		assert.Error(t, err)
	})
}

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("should print every field as key: value", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		cfg := &config.RepositoryConfig{
			PackageName:     "Moq",
			RepositoryURL:   "https://www.nuget.org/api/v2",
			RepoMode:        core.ModeRemote,
			OutputFile:      "deps.txt",
			MaxDepth:        1,
			FilterSubstring: "Castle",
			PackageVersion:  "4.20.70",
		}

		// when
		err := output.Config(&buf, cfg)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Loaded configuration:\n"+
			"package_name: Moq\n"+
			"repository_url: https://www.nuget.org/api/v2\n"+
			"repo_mode: remote\n"+
			"output_file: deps.txt\n"+
			"max_depth: 1\n"+
			"filter_substring: Castle\n"+
			"package_version: 4.20.70\n", buf.String())
	})
}
