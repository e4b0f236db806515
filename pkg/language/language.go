// Package language classifies changed lines by language.
package language

import (
	"path"
	"strings"

	"github.com/src-d/enry/v2"
)

// Class labels shared by several extensions.
const (
	JS    = "JS"
	CSS   = "CSS"
	HTML  = "HTML"
	Other = "OTHER"
)

// extensionClasses maps lower-case extensions to their class.
var extensionClasses = map[string]string{
	"js":   JS,
	"jsx":  JS,
	"ts":   JS,
	"tsx":  JS,
	"css":  CSS,
	"scss": CSS,
	"sass": CSS,
	"html": HTML,
	"htm":  HTML,
}

// Classify returns the language class of a line. An explicit tag is used
// verbatim; otherwise the class comes from the file extension: known
// extensions map through the fixed table, unknown ones are upper-cased, and
// paths without an extension are Other.
func Classify(tag, filePath string) string {
	if tag = strings.TrimSpace(tag); tag != "" {
		return tag
	}

	return ByExtension(filePath)
}

// ByExtension classifies a path by its extension alone.
func ByExtension(filePath string) string {
	ext := strings.TrimPrefix(path.Ext(filePath), ".")
	if ext == "" {
		return Other
	}

	ext = strings.ToLower(ext)

	if class, ok := extensionClasses[ext]; ok {
		return class
	}

	return strings.ToUpper(ext)
}

// Linguist returns the linguist language name of a path ("JavaScript",
// "Go", ...), or "" when it cannot be told from the name.
func Linguist(filePath string) string {
	if lang, ok := enry.GetLanguageByExtension(filePath); ok {
		return lang
	}

	if lang, ok := enry.GetLanguageByFilename(filePath); ok {
		return lang
	}

	return ""
}
