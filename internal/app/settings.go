package app

import (
	"fmt"
	"math"

	"golang.org/x/text/message"

	"qrcheckin.klederson.com/internal/profile"
	"qrcheckin.klederson.com/internal/ui"
)

type settingRow int

const (
	rowPreset settingRow = iota
	rowResolution
	rowFPS
	rowSpeed
	rowScale
	rowRegion
	rowCount
)

var resolutions = [][2]int{{320, 240}, {480, 360}, {640, 480}, {1280, 720}, {1920, 1080}}

const (
	minFPS, maxFPS, stepFPS = 5, 60, 5
	minFraction, stepFrac   = 0.1, 0.1
)

// settingsEditor holds an unsaved copy of the profile. key is the preset
// the draft is shown as; it is CUSTOM only by explicit choice or when no
// preset matches.
type settingsEditor struct {
	draft profile.Profile
	key   string
	row   settingRow
}

func newSettingsEditor(p profile.Profile) settingsEditor {
	return settingsEditor{draft: p, key: profile.Classify(p)}
}

func (e *settingsEditor) move(delta int) {
	e.row = settingRow((int(e.row) + delta + int(rowCount)) % int(rowCount))
}

// adjust steps the selected field and reclassifies the draft.
func (e *settingsEditor) adjust(delta int) {
	d := &e.draft
	switch e.row {
	case rowPreset:
		keys := profile.Keys()
		i := indexOf(keys, e.key)
		e.key = keys[(i+delta+len(keys))%len(keys)]
		if e.key == profile.Custom {
			// Custom keeps the current values under the custom name.
			d.Name = profile.MustPreset(profile.Custom).Name
			return
		}
		*d = profile.MustPreset(e.key)
		return
	case rowResolution:
		i := 0
		for j, r := range resolutions {
			if r[0] == d.Video.Width && r[1] == d.Video.Height {
				i = j
			}
		}
		i = clampInt(i+delta, 0, len(resolutions)-1)
		d.Video.Width, d.Video.Height = resolutions[i][0], resolutions[i][1]
	case rowFPS:
		d.Video.FrameRate = clampInt(d.Video.FrameRate+delta*stepFPS, minFPS, maxFPS)
	case rowSpeed:
		d.ScanSpeed = profile.Level(clampInt(int(d.ScanSpeed)+delta, int(profile.LevelFast), int(profile.LevelPowerSaver)))
	case rowScale:
		d.ScanScale = stepFraction(d.ScanScale, delta)
	case rowRegion:
		d.ScanRegionSize = stepFraction(d.ScanRegionSize, delta)
	}
	e.key = profile.Classify(*d)
	d.Name = profile.MustPreset(e.key).Name
}

func (e settingsEditor) rows(p *message.Printer) []ui.SettingRow {
	d := e.draft
	return []ui.SettingRow{
		{Label: p.Sprintf("settings.profile"), Value: fmt.Sprintf("%s (%s)", d.Name, e.key)},
		{Label: p.Sprintf("settings.resolution"), Value: fmt.Sprintf("%dx%d", d.Video.Width, d.Video.Height)},
		{Label: p.Sprintf("settings.fps"), Value: fmt.Sprintf("%d fps", d.Video.FrameRate)},
		{Label: p.Sprintf("settings.speed"), Value: fmt.Sprintf("%s (%dms)", speedLabel(p, d.ScanSpeed), d.Interval().Milliseconds())},
		{Label: p.Sprintf("settings.scale"), Value: fmt.Sprintf("%.1f", d.ScanScale)},
		{Label: p.Sprintf("settings.region"), Value: fmt.Sprintf("%d%%", int(math.Round(d.ScanRegionSize*100)))},
	}
}

func speedLabel(p *message.Printer, l profile.Level) string {
	switch l {
	case profile.LevelFast:
		return p.Sprintf("settings.speed.1")
	case profile.LevelPowerSaver:
		return p.Sprintf("settings.speed.3")
	default:
		return p.Sprintf("settings.speed.2")
	}
}

func stepFraction(v float64, delta int) float64 {
	v = math.Round((v+float64(delta)*stepFrac)*10) / 10
	return math.Max(minFraction, math.Min(1, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return 0
}
