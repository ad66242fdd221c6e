package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/agbru/bitexact/internal/natural"
)

const (
	// DefaultProfileFileName is the file name of the profile in the user's
	// home directory.
	DefaultProfileFileName = ".bitexact_calibration.json"

	// CurrentProfileVersion is bumped whenever the profile layout or the
	// meaning of a threshold changes. Older profiles are ignored.
	CurrentProfileVersion = 1

	// MaxProfileAge is the age after which a cached profile is no longer
	// applied automatically.
	MaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile stores measured engine thresholds together with the
// fingerprint of the machine they were measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU      int    `json:"num_cpu"`
	GOARCH      string `json:"goarch"`
	GOOS        string `json:"goos"`
	GoVersion   string `json:"go_version"`
	WordSize    int    `json:"word_size"`
	CPUFeatures string `json:"cpu_features"`

	Thresholds natural.Thresholds `json:"thresholds"`

	// CalibrationTime is the wall time the measurement took.
	CalibrationTime string `json:"calibration_time,omitempty"`
}

// NewProfile returns a profile fingerprinting the current machine, holding
// the default thresholds.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    CPUFeatures(),
		Thresholds:     natural.DefaultThresholds(),
	}
}

// CPUFeatures lists the instruction set extensions that change the relative
// cost of the multiplication and division kernels.
func CPUFeatures() string {
	var f []string
	add := func(name string, ok bool) {
		if ok {
			f = append(f, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("adx", cpu.X86.HasADX)
		add("avx2", cpu.X86.HasAVX2)
		add("bmi2", cpu.X86.HasBMI2)
		add("avx512f", cpu.X86.HasAVX512F)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("sve", cpu.ARM64.HasSVE)
	}
	return strings.Join(f, ",")
}

// IsValid reports whether the profile was measured by this profile version
// on a machine like this one, and holds usable thresholds.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.CPUFeatures == CPUFeatures() &&
		p.Thresholds.Validate() == nil
}

// IsStale reports whether the profile is older than maxAge. A nil profile
// is stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	t := p.Thresholds
	return fmt.Sprintf("Calibration profile v%d (%s/%s, %d CPUs, features [%s], %s): karatsuba=%d toom3=%d karatsuba-sqr=%d toom3-sqr=%d bz=%d bz-offset=%d words",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.CPUFeatures, p.CalibratedAt.Format(time.RFC3339),
		t.KaratsubaMul, t.ToomCook3Mul, t.KaratsubaSqr, t.ToomCook3Sqr, t.BurnikelZiegler, t.BurnikelZieglerOffset)
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When the file is missing or
// unreadable it returns a fresh profile and false.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/.bitexact_calibration.json, or the file
// name alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
