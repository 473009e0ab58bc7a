package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/born-ml/syft/internal/config"
	"github.com/born-ml/syft/internal/hook"
	"github.com/born-ml/syft/internal/library"
	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Send tensors to a virtual worker and compute remotely",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		workerID, _ := cmd.Flags().GetString("worker")
		logger := log.New(cmd.ErrOrStderr(), "syft: ", log.LstdFlags)

		h, err := hook.Install(library.New(), hook.WithConfig(cfg), hook.WithLogger(logger))
		if err != nil {
			return err
		}
		return runDemo(cmd.OutOrStdout(), h, workerID)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("worker", "bob", "id of the remote virtual worker")
}

func runDemo(w io.Writer, h *hook.Hook, workerID string) error {
	remote := h.NewVirtualWorker(workerID)

	x, err := h.New(library.TensorClass, []any{[]float64{1, 2, 3, 4}}, registry.Kwargs{"shape": tensor.Shape{2, 2}})
	if err != nil {
		return err
	}
	y, err := h.New(library.TensorClass, []any{[]float64{10, 20, 30, 40}}, registry.Kwargs{"shape": tensor.Shape{2, 2}})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "x = %s\n", x)

	px, err := callObject(x, "send", remote)
	if err != nil {
		return err
	}
	py, err := callObject(y, "send", remote)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "sent x -> %s\n", px)

	pz, err := callObject(px, "add", py)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "x + y  -> %s\n", pz)

	m, ok := h.Library().Module(library.LinalgModule)
	if !ok {
		return fmt.Errorf("missing module %s", library.LinalgModule)
	}
	res, err := m.Call("matmul", pz, px)
	if err != nil {
		return err
	}
	pm, ok := res.(*registry.Object)
	if !ok {
		return fmt.Errorf("matmul returned %T", res)
	}
	fmt.Fprintf(w, "matmul -> %s\n", pm)

	z, err := callObject(pm, "get")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "result = %s\n", z)
	fmt.Fprintf(w, "%s holds %d objects\n", remote.ID(), remote.Len())
	return nil
}

func callObject(o *registry.Object, method string, args ...any) (*registry.Object, error) {
	res, err := o.Call(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	obj, ok := res.(*registry.Object)
	if !ok {
		return nil, fmt.Errorf("%s returned %T", method, res)
	}
	return obj, nil
}
