package ftstate

import (
	"os"
	"path/filepath"

	"github.com/datatug/netexplorer/pkg/fsutils"
	"go.uber.org/zap"
)

const DefaultStateDir = "~/.netexplorer"
const stateFileName = "netexplorer-state.json"

var settingsDirPath = fsutils.ExpandHome(DefaultStateDir)

var logger = zap.NewNop()

// State is the only data the explorer keeps between runs.
type State struct {
	LastPath string `json:"last_path,omitempty"`
}

// SetStateDir changes the directory holding the state file; "~" is expanded.
func SetStateDir(dir string) {
	if dir == "" {
		dir = DefaultStateDir
	}
	settingsDirPath = fsutils.ExpandHome(dir)
}

func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func getStateFilePath() string {
	return filepath.Join(settingsDirPath, stateFileName)
}

var readJSON = fsutils.ReadJSONFile
var writeJSON = fsutils.WriteJSONFile

func GetState() (*State, error) {
	filePath := getStateFilePath()
	var state State
	return &state, readJSON(filePath, false, &state)
}

// LastPath returns the last browsed location or "" when none was saved or the
// state file is unreadable.
func LastPath() string {
	state, err := GetState()
	if err != nil {
		logger.Warn("failed to read state file", zap.String("file", getStateFilePath()), zap.Error(err))
		return ""
	}
	return state.LastPath
}

func SaveLastPath(p string) {
	saveSettingValue(func(state *State) {
		state.LastPath = p
	})
}

func saveSettingValue(f func(state *State)) {
	filePath := getStateFilePath()
	var state State
	if err := readJSON(filePath, false, &state); err != nil {
		logger.Warn("failed to read state file", zap.String("file", filePath), zap.Error(err))
	}

	exists, err := fsutils.DirExists(settingsDirPath)
	if err != nil {
		logger.Error("failed to check settings directory", zap.Error(err))
		return
	}
	if !exists {
		if _, statErr := os.Stat(settingsDirPath); statErr == nil {
			logger.Error("settings path is not a directory", zap.String("dir", settingsDirPath))
			return
		}
		if err = os.MkdirAll(settingsDirPath, os.ModePerm); err != nil {
			logger.Error("failed to create settings directory", zap.Error(err))
			return
		}
	}

	f(&state)
	if err = writeJSON(filePath, state); err != nil {
		logger.Error("failed to write state file", zap.String("file", filePath), zap.Error(err))
	}
}
