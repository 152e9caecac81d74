/*
Copyright © 2026 The traitstore authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package main

import (
	"context"
	"fmt"

	"github.com/razinkele/traitstore/internal/iodb"
	"github.com/razinkele/traitstore/internal/iostore"
	"github.com/razinkele/traitstore/pkg/db"
	"github.com/razinkele/traitstore/pkg/traitstore"
)

// openClient opens the database and wires the store behind the
// cache-fronted client. The caller owns the returned operator and must
// close it.
func openClient(ctx context.Context) (db.Operator, *traitstore.Client, error) {
	cfg := getConfig()

	var op db.Operator = iodb.NewSQLiteOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	st, err := iostore.New(ctx, op)
	if err != nil {
		op.Close()
		return nil, nil, err
	}

	client, err := traitstore.NewClient(cfg, st)
	if err != nil {
		op.Close()
		return nil, nil, err
	}
	return op, client, nil
}
