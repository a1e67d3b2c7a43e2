package profile

// Preset keys.
const (
	LowEnd          = "LOW_END"
	Balanced        = "BALANCED"
	HighPerformance = "HIGH_PERFORMANCE"
	Custom          = "CUSTOM"
)

const facingEnvironment = "environment"

var presets = map[string]Profile{
	LowEnd: {
		Name:           "省電模式 (低階設備)",
		Video:          Video{FacingMode: facingEnvironment, Width: 480, Height: 360, FrameRate: 15},
		ScanSpeed:      LevelPowerSaver,
		ScanScale:      0.3,
		ScanRegionSize: 0.4,
	},
	Balanced: {
		Name:           "平衡模式",
		Video:          Video{FacingMode: facingEnvironment, Width: 640, Height: 480, FrameRate: 20},
		ScanSpeed:      LevelNormal,
		ScanScale:      0.4,
		ScanRegionSize: 0.5,
	},
	HighPerformance: {
		Name:           "高效模式 (高階設備)",
		Video:          Video{FacingMode: facingEnvironment, Width: 1280, Height: 720, FrameRate: 30},
		ScanSpeed:      LevelFast,
		ScanScale:      0.6,
		ScanRegionSize: 0.6,
	},
	Custom: {
		Name:           "自定義設定",
		Video:          Video{FacingMode: facingEnvironment, Width: 640, Height: 480, FrameRate: 20},
		ScanSpeed:      LevelNormal,
		ScanScale:      0.4,
		ScanRegionSize: 0.5,
	},
}

// matchOrder is the order Classify tries presets in. CUSTOM never matches.
var matchOrder = []string{LowEnd, Balanced, HighPerformance}

// Preset returns the named preset and whether it exists.
func Preset(key string) (Profile, bool) {
	p, ok := presets[key]
	return p, ok
}

// MustPreset returns the named preset or panics.
func MustPreset(key string) Profile {
	p, ok := presets[key]
	if !ok {
		panic("profile: unknown preset " + key)
	}
	return p
}

// Keys lists the selectable presets in display order.
func Keys() []string {
	return []string{LowEnd, Balanced, HighPerformance, Custom}
}

// Classify names the preset p corresponds to. A profile matches a preset
// iff its cadence level and frame rate equal the preset's; anything else
// is CUSTOM. The result depends only on the current field values.
func Classify(p Profile) string {
	for _, key := range matchOrder {
		preset := presets[key]
		if p.ScanSpeed == preset.ScanSpeed && p.Video.FrameRate == preset.Video.FrameRate {
			return key
		}
	}
	return Custom
}
