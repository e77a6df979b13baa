package country

import (
	"embed"
	"io/fs"
)

//go:embed flags/*.png
var flagFiles embed.FS

// Images returns the bundled flag images, addressed by Country.Image.
func Images() fs.FS {
	sub, err := fs.Sub(flagFiles, "flags")
	if err != nil {
		panic(err)
	}
	return sub
}
