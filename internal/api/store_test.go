package api_test

import (
	"github.com/jask/catalogedit/internal/api"
	"github.com/jask/catalogedit/internal/editor"
)

var _ editor.Store = (*api.Client)(nil)
