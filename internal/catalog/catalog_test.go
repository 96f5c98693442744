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
package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

func writeDescriptor(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return path
}

const animalDescriptor = `{
  "namespace": "Zoo",
  "types": [
    {
      "clrName": "Zoo.Animal",
      "kind": "Class",
      "methods": [
        {
          "clrName": "Speak",
          "parameterCount": 0,
          "parameterTypes": [],
          "parameterModifiers": [],
          "returnType": "System.String",
          "isVirtual": true,
          "visibility": "public"
        }
      ],
      "properties": [
        {"clrName": "Name", "type": "System.String", "visibility": "public"}
      ]
    },
    {
      "clrName": "Zoo.Dog",
      "kind": "Class",
      "baseType": {"clrName": "Zoo.Animal"},
      "methods": [
        {
          "clrName": "Fetch",
          "parameterCount": 2,
          "parameterTypes": ["System.String", "System.Int32"],
          "parameterModifiers": ["", "out"],
          "returnType": "System.Boolean",
          "visibility": "public"
        },
        {
          "clrName": "Fetch",
          "parameterCount": 2,
          "parameterTypes": ["System.String", "System.Int32"],
          "parameterModifiers": ["", ""],
          "returnType": "System.Boolean",
          "visibility": "public"
        }
      ]
    }
  ]
}`

func TestLoad_ResolveInherited(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "zoo.json", animalDescriptor)

	c := New()
	errs := c.Load(dir)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 2, c.Stats.TypesLoaded)

	dog, ok := c.ResolveType("Zoo.Dog")
	assert.True(t, ok)
	assert.Equal(t, "Zoo.Animal", dog.BaseType)

	_, ok = c.ResolveMethod("Zoo.Dog", "Speak", nil, nil)
	assert.True(t, ok)

	m, ok := c.ResolveMethod("Zoo.Dog", "Fetch", []string{"System.String", "System.Int32"}, []string{"", "out"})
	assert.True(t, ok)
	assert.Equal(t, "System.Boolean", m.ReturnType)

	assert.Equal(t, 2, c.OverloadCount("Zoo.Dog", "Fetch", 2))
	assert.Equal(t, 0, c.OverloadCount("Zoo.Animal", "Fetch", 2))
}

func TestLoad_ResolveShortName(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "zoo.json", animalDescriptor)

	c := New()
	c.Load(dir)

	entry, ok := c.ResolveType("Dog")
	assert.True(t, ok)
	assert.Equal(t, "Zoo.Dog", entry.FQName)
}

func TestLoad_MalformedDescriptorSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "good.json", animalDescriptor)
	writeDescriptor(t, dir, "bad.json", `{not json`)

	c := New()
	errs := c.Load(dir)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, 1, c.Stats.DescriptorsSkipped)

	_, ok := c.ResolveType("Zoo.Dog")
	assert.True(t, ok)
}

func TestLoad_MissingRequiredFieldSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "noname.json", `{"namespace": "Zoo", "types": [{"kind": "Class"}]}`)

	c := New()
	errs := c.Load(dir)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 1, c.Stats.DescriptorsSkipped)
	assert.Equal(t, 0, c.Stats.TypesLoaded)
}

func TestLoad_CrossRootCollisionIsError(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeDescriptor(t, dirA, "zoo.json", animalDescriptor)
	writeDescriptor(t, dirB, "zoo.json", animalDescriptor)

	c := New()
	c.Load(dirA)
	errs := c.Load(dirB)

	assert.True(t, len(errs) > 0)
	assert.Equal(t, 2, c.Stats.Collisions)
}

func TestResolveMethod_NotFoundOnUnrelatedType(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "zoo.json", animalDescriptor)

	c := New()
	c.Load(dir)

	_, ok := c.ResolveMethod("Zoo.Animal", "Fetch", []string{"System.String", "System.Int32"}, []string{"", ""})
	assert.False(t, ok)
}
