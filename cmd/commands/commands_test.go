/*
Copyright 2024 The Tabflow Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package commands

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Commands(t *testing.T) {

	t.Run("root execute", func(t *testing.T) {
		rootCmd.SetArgs([]string{"help"})
		assert.NotPanics(t, Execute, "help")
	})

	t.Run("test root", func(t *testing.T) {
		b := bytes.NewBufferString("")
		rootCmd.SetOut(b)
		rootCmd.SetArgs([]string{"help"})
		Execute()
		output, _ := io.ReadAll(b)
		assert.Contains(t, string(output), "Available Commands")
		assert.Contains(t, string(output), "profile")
		assert.Contains(t, string(output), "segment")
		assert.Contains(t, string(output), "reduce")
	})

	t.Run("Profile", func(t *testing.T) {
		cmd := NewProfileCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "profile", cmd.Use)
		assert.Equal(t, "string", cmd.Flag("input").Value.Type())
		assert.Equal(t, "string", cmd.Flag("config").Value.Type())
		assert.Equal(t, "int", cmd.Flag("parallelism").Value.Type())
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required flag")
	})

	t.Run("Reduce", func(t *testing.T) {
		cmd := NewReduceCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "reduce", cmd.Use)
		assert.Equal(t, "string", cmd.Flag("key-column").Value.Type())
		assert.Equal(t, "stringSlice", cmd.Flag("ops").Value.Type())
		assert.Equal(t, "int", cmd.Flag("partitions").Value.Type())
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required flag")
	})

	t.Run("Segment", func(t *testing.T) {
		cmd := NewSegmentCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "segment", cmd.Use)
		assert.Equal(t, "string", cmd.Flag("time-column").Value.Type())
		assert.Equal(t, "int64", cmd.Flag("window-size").Value.Type())
		assert.Equal(t, "int64", cmd.Flag("window-separation").Value.Type())
		assert.Equal(t, "bool", cmd.Flag("exclude-empty-windows").Value.Type())
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required flag")
	})
}
