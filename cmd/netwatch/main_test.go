package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/wiresock/netwatch/capture"
	mock_capture "github.com/wiresock/netwatch/capture/mock"
)

var errOpenFailed = errors.New("open failed")

func TestRun_NoInterfacesFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_capture.NewMockSource(ctrl)
	source.EXPECT().Interfaces().Return(nil, nil)

	code := run(source, strings.NewReader(""))
	assert.Equal(t, exitNoInterfaces, code)
}

func TestRun_OpenFailureReturnsExitOpenFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_capture.NewMockSource(ctrl)
	source.EXPECT().Interfaces().Return([]capture.Interface{{Name: "eth0"}}, nil)
	source.EXPECT().Open("eth0", gomock.Any(), gomock.Any()).Return(nil, errOpenFailed)

	code := run(source, strings.NewReader("1\n"))
	assert.Equal(t, exitOpenFailed, code)
}

func TestRun_InvalidSelectionRetriesThenGivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_capture.NewMockSource(ctrl)
	source.EXPECT().Interfaces().Return([]capture.Interface{{Name: "eth0"}}, nil)

	code := run(source, strings.NewReader("nope\nnope\nnope\n"))
	assert.Equal(t, exitNoInterfaces, code)
}
