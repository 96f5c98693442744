// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsoniclang/tsonic/internal/compiler"
	"github.com/tsoniclang/tsonic/internal/termio"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] entry_file(s)",
	Short: "compile source files into the target project.",
	Long:  "Compile one or more entry-point source files, together with their transitive imports, into a CLR-family target project.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		opts := compiler.Options{
			EntryPoints:   args,
			SourceRoot:    GetString(cmd, "source-root"),
			TypeRoots:     GetStringArray(cmd, "type-roots"),
			OutDir:        GetString(cmd, "out"),
			RootNamespace: GetString(cmd, "namespace"),
			Lib:           GetStringArray(cmd, "lib"),
			ProjectConfig: GetString(cmd, "project-config"),
			Verbose:       GetFlag(cmd, "verbose"),
			NoColour:      GetFlag(cmd, "no-colour"),
			MaxExportHops: GetInt(cmd, "max-export-hops"),
		}

		result, err := compiler.Compile(opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		colourise := !opts.NoColour && termio.IsTerminal()
		result.Diagnostics.Print(os.Stderr, colourise)

		if result.Diagnostics.HasErrors() {
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().String("out", ".", "output directory for the generated project")
	generateCmd.Flags().String("source-root", ".", "directory absolute imports resolve against")
	generateCmd.Flags().String("namespace", "", "root namespace prefix for emitted types")
	generateCmd.Flags().StringArray("type-roots", nil, "binding-descriptor roots (directories or globs) to load")
	generateCmd.Flags().StringArray("lib", nil, "library paths (accepted and stored; not used by compilation)")
	generateCmd.Flags().String("project-config", "", "path to a tsonic.yaml overriding manifest defaults")
	generateCmd.Flags().Int("max-export-hops", compiler.DefaultMaxExportHops, "bound on export-map transitive closure")

	rootCmd.AddCommand(generateCmd)
}
