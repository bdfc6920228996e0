package main

import (
	"fmt"

	"github.com/machinecoin-project/machinecoin-core/domain/consensus/processes/difficultymanager"
)

func era(conf *eraConfig) error {
	dm := difficultymanager.New(conf.NetParams())
	fmt.Printf("Height %d is in era %s\n", conf.Height, dm.EraAt(conf.Height))
	return nil
}
