//go:build release

package footer

import "github.com/garrettladley/sensorlink/internal/version"

func (f Footer) leftContent() string {
	return hintStyle.Render(version.Get())
}
