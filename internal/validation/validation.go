// Package validation checks catalog identifiers before they are spliced into
// shell command lines. Every identifier ends up inside a string handed to the
// host command interpreter, so anything that could change the meaning of that
// line is rejected.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput          = errors.New("input cannot be empty")
	ErrCommandInjection    = errors.New("potential command injection detected")
	ErrInvalidWingetID     = errors.New("invalid winget package ID")
	ErrInvalidPipPackage   = errors.New("invalid pip package name")
	ErrInvalidNpmPackage   = errors.New("invalid npm package name")
	ErrInvalidExtensionID  = errors.New("invalid editor extension ID")
	ErrInvalidExecutable   = errors.New("invalid executable name")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrUnknownIdentityKind = errors.New("unknown identifier kind")
)

// Identifier kinds understood by Validate.
const (
	KindWinget    = "winget"
	KindPip       = "pip"
	KindNpm       = "npm"
	KindExtension = "extension"
	KindGeneric   = "generic"
)

const maxLen = 256

var (
	// Publisher.Package, e.g. "Microsoft.VisualStudioCode", "Notepad++.Notepad++".
	wingetIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*\.[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// "requests", "black==23.1.0". Range specifiers would need quoting, so only == is allowed.
	pipPackageRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*(==[a-zA-Z0-9._*-]+)?$`)

	// "lodash", "@types/node", "pnpm@10.24.0".
	npmPackageRegex = regexp.MustCompile(`^(@[a-z0-9][a-z0-9._-]*/)?[a-z0-9][a-z0-9._-]*(@[a-zA-Z0-9._-]+)?$`)

	// publisher.extension, e.g. "ms-python.python".
	extensionIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

	// "node", "redis-server", "zap.sh", "7z".
	executableRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	genericRegex = regexp.MustCompile(`^[a-zA-Z0-9@][a-zA-Z0-9@._+/=~-]*$`)

	shellMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "\n", "\r", "\\", "\"", "'", "%", "^", "<", ">", " "}
)

// Validate checks id against the rules for kind.
func Validate(kind, id string) error {
	switch kind {
	case KindWinget:
		return ValidateWingetID(id)
	case KindPip:
		return ValidatePipPackage(id)
	case KindNpm:
		return ValidateNpmPackage(id)
	case KindExtension:
		return ValidateExtensionID(id)
	case KindGeneric, "":
		return check(id, genericRegex, ErrInvalidIdentifier, "is not a valid identifier")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIdentityKind, kind)
	}
}

// ValidateWingetID validates a winget package ID (Publisher.PackageName format).
func ValidateWingetID(id string) error {
	return check(id, wingetIDRegex, ErrInvalidWingetID, "must be in 'Publisher.PackageName' format")
}

// ValidatePipPackage validates a pip package name with an optional == pin.
func ValidatePipPackage(pkg string) error {
	return check(pkg, pipPackageRegex, ErrInvalidPipPackage, "is not a valid pip package name")
}

// ValidateNpmPackage validates an npm package name with optional version.
// npm names are case-insensitive, so the pattern is matched against the lowercase form.
func ValidateNpmPackage(name string) error {
	if err := check(strings.ToLower(name), npmPackageRegex, ErrInvalidNpmPackage, "is not a valid npm package name"); err != nil {
		return err
	}
	if containsShellMeta(name) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, name)
	}
	return nil
}

// ValidateExtensionID validates an editor extension ID (publisher.name).
func ValidateExtensionID(id string) error {
	return check(id, extensionIDRegex, ErrInvalidExtensionID, "must be in 'publisher.name' format")
}

// ValidateExecutableName validates a bare executable name used for path lookups.
func ValidateExecutableName(name string) error {
	return check(name, executableRegex, ErrInvalidExecutable, "is not a bare executable name")
}

func check(s string, re *regexp.Regexp, kindErr error, reason string) error {
	if s == "" {
		return ErrEmptyInput
	}
	if len(s) > maxLen {
		return fmt.Errorf("%w: too long (max %d characters)", kindErr, maxLen)
	}
	if !re.MatchString(s) {
		return fmt.Errorf("%w: %q %s", kindErr, s, reason)
	}
	// The patterns above already exclude these; kept as a second line.
	if containsShellMeta(s) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, s)
	}
	return nil
}

func containsShellMeta(s string) bool {
	for _, char := range shellMetaChars {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}
