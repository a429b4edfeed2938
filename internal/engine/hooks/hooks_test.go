package hooks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports/mocks"
	"go.trai.ch/yalc/internal/engine/hooks"
	"go.uber.org/mock/gomock"
)

func TestHooks_RunsDeclaredScriptsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	scripts := mocks.NewMockScriptRunner(ctrl)
	detector := mocks.NewMockPackageManagerDetector(ctrl)
	log := mocks.NewMockLogger(ctrl)

	detector.EXPECT().Detect("/proj").Return(domain.Yarn)
	gomock.InOrder(
		log.EXPECT().Info("Running prepare script: tsc"),
		scripts.EXPECT().RunScript(gomock.Any(), "/proj", domain.Yarn, "prepare").Return(nil),
		log.EXPECT().Info("Running postpack script: echo done"),
		scripts.EXPECT().RunScript(gomock.Any(), "/proj", domain.Yarn, "postpack").Return(nil),
	)

	m := &domain.Manifest{Scripts: map[string]string{
		"prepare":  "tsc",
		"postpack": "echo done",
		"empty":    "",
	}}
	h := hooks.NewRunner(scripts, detector, log).Bind("/proj", m)
	assert.Equal(t, domain.Yarn, h.PackageManager())

	require.NoError(t, h.Run(context.Background(), "prepublish", "prepare", "empty", "postpack"))
}

func TestHooks_StopsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	scripts := mocks.NewMockScriptRunner(ctrl)
	detector := mocks.NewMockPackageManagerDetector(ctrl)
	log := mocks.NewMockLogger(ctrl)

	detector.EXPECT().Detect(gomock.Any()).Return(domain.NPM)
	log.EXPECT().Info(gomock.Any())
	scripts.EXPECT().RunScript(gomock.Any(), gomock.Any(), domain.NPM, "a").Return(errors.New("exit 1"))

	m := &domain.Manifest{Scripts: map[string]string{"a": "false", "b": "true"}}
	err := hooks.NewRunner(scripts, detector, log).Bind("/proj", m).Run(context.Background(), "a", "b")
	require.Error(t, err)
}
