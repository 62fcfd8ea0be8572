package core

import (
	packageurl "github.com/git-pkgs/packageurl-go"
)

// PURL returns the package URL for a NuGet package. The version is omitted
// when empty, which is the case for dependencies that only carry a range.
func PURL(name, version string) string {
	p := packageurl.NewPackageURL(packageurl.TypeNuget, "", name, version, nil, "")
	return p.ToString()
}
