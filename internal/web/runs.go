package web

import (
	"github.com/peterkuimelis/deckcrawl/internal/game"
	"gopkg.in/yaml.v3"
)

func parseRunFileYAML(data []byte) (game.RunFile, error) {
	var rf game.RunFile
	err := yaml.Unmarshal(data, &rf)
	return rf, err
}
