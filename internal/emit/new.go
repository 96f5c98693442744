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
package emit

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/emit/backend"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// emitNew lowers a `new` expression, applying the three constructor rewrites
// spec §4.7 documents: `new Array<T>(n)` -> `new T[n]`, `new List<T>([...])`
// -> a collection initializer, and `new Promise<T>(executor)` -> a
// TaskCompletionSource-backed invocation.
func (ee *ExprEmitter) emitNew(v *ir.NewExpr) backend.Expr {
	switch {
	case v.IsArrayConstructor:
		return ee.emitArrayConstructor(v)
	case v.IsListConstructor:
		return ee.emitListConstructor(v)
	case v.IsPromiseConstructor:
		return ee.emitPromiseConstructor(v)
	default:
		return ee.emitPlainNew(v)
	}
}

func (ee *ExprEmitter) elemTypeArg(v *ir.NewExpr) string {
	if len(v.TypeArgs) == 0 {
		return "object"
	}

	return ee.types.Emit(v.TypeArgs[0])
}

func (ee *ExprEmitter) emitArrayConstructor(v *ir.NewExpr) backend.Expr {
	elemType := ee.elemTypeArg(v)

	var size backend.Expr
	if len(v.Args) > 0 {
		size = ee.Emit(v.Args[0])
	}

	return backend.NewArray{ElemType: elemType, Size: size}
}

func (ee *ExprEmitter) emitListConstructor(v *ir.NewExpr) backend.Expr {
	elemType := ee.elemTypeArg(v)

	var init []backend.Expr
	if len(v.Args) == 1 {
		if arr, ok := v.Args[0].(*ir.ArrayLit); ok {
			init = make([]backend.Expr, len(arr.Elements))
			for i, el := range arr.Elements {
				init[i] = ee.Emit(el)
			}
		}
	}

	return backend.New{Type: "List<" + elemType + ">", Initializer: init, HasInit: len(init) > 0}
}

func (ee *ExprEmitter) emitPlainNew(v *ir.NewExpr) backend.Expr {
	name := backend.RenderExpr(ee.Emit(v.Callee))

	if len(v.TypeArgs) > 0 {
		parts := make([]string, len(v.TypeArgs))
		for i, ta := range v.TypeArgs {
			parts[i] = ee.types.Emit(ta)
		}

		name += "<" + strings.Join(parts, ", ") + ">"
	}

	args := make([]backend.Expr, len(v.Args))
	for i, a := range v.Args {
		args[i] = ee.Emit(a)
	}

	return backend.New{Type: name, Args: args}
}

// emitPromiseConstructor lowers `new Promise<T>(executor)` to an
// immediately-invoked lambda that builds a TaskCompletionSource, hands the
// executor its resolve/reject callbacks, and returns the pending Task (spec
// §4.7). The executor's own body is left untouched; only the constructor
// call site is rewritten.
func (ee *ExprEmitter) emitPromiseConstructor(v *ir.NewExpr) backend.Expr {
	elemType := ee.elemTypeArg(v)
	tcsType := "global::System.Threading.Tasks.TaskCompletionSource<" + elemType + ">"

	var executor backend.Expr
	if len(v.Args) > 0 {
		executor = ee.Emit(v.Args[0])
	}

	tcs := backend.Ident{Name: "__tcs"}

	resolve := backend.Lambda{
		Params: []string{"__v"},
		Body:   backend.Call{Callee: backend.Member{Receiver: tcs, Name: "SetResult"}, Args: []backend.Expr{backend.Ident{Name: "__v"}}},
	}

	reject := backend.Lambda{
		Params: []string{"__e"},
		Body:   backend.Call{Callee: backend.Member{Receiver: tcs, Name: "SetException"}, Args: []backend.Expr{backend.Ident{Name: "__e"}}},
	}

	body := []backend.Stmt{
		&backend.VarDecl{Type: tcsType, Name: "__tcs", Init: backend.New{Type: tcsType}},
		&backend.ExprStmt{X: backend.Call{Callee: executor, Args: []backend.Expr{resolve, reject}}},
		&backend.Return{Value: backend.Member{Receiver: tcs, Name: "Task"}},
	}

	return backend.Call{Callee: backend.Lambda{Block: body}}
}
