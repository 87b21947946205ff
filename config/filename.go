package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"zcss/misc"
)

const (
	stylesheetExt = ".css"
	// most file systems limit name to 255 bytes
	maxFileNameLen = 255
)

// StylesheetFileName turns arbitrary string into file name usable for
// generated stylesheet: characters not allowed on the platform are dropped,
// leading dots are removed, reserved names are escaped and ".css" extension
// is added unless present.
func StylesheetFileName(in string) string {
	name := strings.Map(func(r rune) rune {
		if r < ' ' || strings.ContainsRune(forbiddenRunes+string(os.PathSeparator)+string(os.PathListSeparator), r) {
			return -1
		}
		return r
	}, in)
	name = strings.TrimRight(strings.TrimLeft(name, ". "), " ")

	if strings.EqualFold(filepath.Ext(name), stylesheetExt) {
		name = name[:len(name)-len(stylesheetExt)]
	}
	if len(name) == 0 {
		name = misc.GetAppName()
	}
	if reservedName(name) {
		name = "_" + name
	}

	limit := maxFileNameLen - len(stylesheetExt)
	for len(name) > limit {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return name + stylesheetExt
}
