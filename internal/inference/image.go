package inference

import (
	"encoding/base64"
	"fmt"
	"os"
)

// EncodeImageDataURI reads an image file and returns it as a base64 data
// URI. The endpoint accepts any raster content under the image/jpeg label,
// so the prefix is fixed regardless of the file's actual format.
func EncodeImageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data), nil
}
