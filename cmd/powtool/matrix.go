package main

import (
	"fmt"
	"strings"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/pow"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/svd"
)

type matrixCommand struct {
	command
	Prev string `long:"prev" description:"Hex encoded hash of the parent block" required:"true"`
}

func (c *matrixCommand) Execute(_ []string) error {
	prev, err := externalapi.NewDomainHashFromString(c.Prev)
	if err != nil {
		return err
	}
	seed := pow.MatrixSeed(prev)
	matrix := pow.GenerateMatrix(seed)

	fmt.Fprintf(c.out, "seed: %s\n", seed)
	values := make([]float64, 0, pow.MatrixSize*pow.MatrixSize)
	var row strings.Builder
	for i := 0; i < pow.MatrixSize; i++ {
		row.Reset()
		for j := 0; j < pow.MatrixSize; j++ {
			fmt.Fprintf(&row, "%x", matrix.At(i, j))
			values = append(values, float64(matrix.At(i, j)))
		}
		fmt.Fprintln(c.out, row.String())
	}

	singularValues := svd.SingularValues(svd.NewMatrixFromValues(pow.MatrixSize, pow.MatrixSize, values))
	fmt.Fprintf(c.out, "largest singular value:  %.6f\n", singularValues[0])
	fmt.Fprintf(c.out, "smallest singular value: %.6f\n", singularValues[len(singularValues)-1])
	return nil
}
