// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package typeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	params := NewSet("auth", "locale")
	ctx := NewSet("auth", "page")

	assert.True(t, params.Contain("auth", "locale"))
	assert.False(t, params.Contain("auth", "page"))

	matched := params.Intersection(ctx)
	assert.True(t, matched.Equal(NewSet("auth")))
	assert.False(t, matched.Equal(params))

	assert.ElementsMatch(t, []string{"auth", "locale", "page"}, params.Union(ctx).Collect())
	assert.ElementsMatch(t, []string{"locale"}, params.Complement(ctx).Collect())
	assert.Equal(t, params, params.Complement(nil))

	clone := params.Clone()
	clone.Remove("auth")
	assert.Equal(t, 2, params.Len())
	assert.Equal(t, 1, clone.Len())

	visited := 0
	params.Range(func(string) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)

	clone.Clear()
	assert.Equal(t, 0, clone.Len())
	assert.True(t, NewSet[string]().Equal(nil))
}
