package main

import (
	"fmt"
	"os"
	"path"

	"github.com/jobala/minidb/buffer"
	"github.com/jobala/minidb/config"
	"github.com/jobala/minidb/storage/disk"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minidb",
		Short: "Educational storage engine built around a clock-sweep buffer pool",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		cfgPath  string
		dataDir  string
		poolSize int
	)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk a page file and the buffer pool through their paces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("pool-size") {
				cfg.Pool.Size = poolSize
			}

			return runDemo(cfg)
		},
	}

	demoCmd.Flags().StringVar(&cfgPath, "config", "", "Path to a yaml config file")
	demoCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory for database files")
	demoCmd.Flags().IntVar(&poolSize, "pool-size", 100, "Number of frames in the buffer pool")
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	filename := path.Join(cfg.DataDir, "demo.db")
	file, err := disk.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
		_ = disk.Remove(filename)
	}()

	// Put a few records on pages through the file directly.
	var thirdPageNo disk.PageID
	for i := range 5 {
		page, err := file.AllocatePage()
		if err != nil {
			return err
		}
		if i == 3 {
			thirdPageNo = page.PageNumber()
		}

		if _, err := page.InsertRecord([]byte("hello!")); err != nil {
			return err
		}
		if err := file.WritePage(&page); err != nil {
			return err
		}
	}

	third, err := file.ReadPage(thirdPageNo)
	if err != nil {
		return err
	}
	rid, err := third.InsertRecord([]byte("world!"))
	if err != nil {
		return err
	}
	if err := file.WritePage(&third); err != nil {
		return err
	}

	record, err := third.GetRecord(rid)
	if err != nil {
		return err
	}
	fmt.Printf("page %d has a new record: %s\n\n", thirdPageNo, record)

	// Now the same through the buffer pool: allocate, mutate, unpin dirty,
	// flush, read back.
	bufMgr := buffer.NewBufferpoolManager(cfg.Pool.Size)

	pageNo, page, err := bufMgr.AllocPage(file)
	if err != nil {
		return err
	}
	rid, err = page.InsertRecord(fmt.Appendf(nil, "cached on page %d", pageNo))
	if err != nil {
		return err
	}
	if err := bufMgr.UnpinPage(file, pageNo, true); err != nil {
		return err
	}
	if err := bufMgr.FlushFile(file); err != nil {
		return err
	}

	page, err = bufMgr.ReadPage(file, pageNo)
	if err != nil {
		return err
	}
	record, err = page.GetRecord(rid)
	if err != nil {
		return err
	}
	fmt.Printf("read back through the pool: %s\n\n", record)

	if err := bufMgr.UnpinPage(file, pageNo, false); err != nil {
		return err
	}

	fmt.Print(bufMgr)
	return bufMgr.Close()
}
