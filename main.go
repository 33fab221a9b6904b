package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Wyaro/curriculum-parser/curriculum"
	"gopkg.in/yaml.v2"
)

const configFile = "parserconf.yml"

type Config struct {
	Sheets      curriculum.Cfg `yaml:"sheets"`
	PreviewRows int            `yaml:"preview_rows"`
	JSONIndent  int            `yaml:"json_indent"`
}

var config Config

func loadConfig() {
	config = Config{
		Sheets:      curriculum.DefaultCfg(),
		PreviewRows: 5,
		JSONIndent:  2,
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalln("Failed to read config file ("+configFile+"):", err)
		}
		return
	}
	if err = yaml.Unmarshal(raw, &config); err != nil {
		log.Fatalln("Failed to decode config file ("+configFile+"):", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: curriculum-parser <command> <workbook> [sheet]

Commands:
  parse    <workbook>           full extraction, JSON on stdout
  summary  <workbook>           key-fact digest of the workbook
  inspect  <workbook> [sheet]   sheet structure preview (all sheets
                                when no sheet name is given)`)
	os.Exit(2)
}

func parseCmd(path string) error {
	parsed, err := curriculum.ParseFileCfg(path, config.Sheets)
	if err != nil {
		return err
	}
	return curriculum.DumpJSON(os.Stdout, parsed, config.JSONIndent)
}

func summaryCmd(path string) error {
	summary := curriculum.SummarizeCfg(path, config.Sheets)
	if !summary.Success {
		log.Printf("ERROR: While summarizing %s: %s\n", path, summary.Error)
		return curriculum.DumpJSON(os.Stdout, summary, config.JSONIndent)
	}
	fmt.Print(renderSummary(summary))
	return nil
}

func inspectCmd(path, sheet string) error {
	structure := curriculum.GetStructure(path, sheet, config.PreviewRows)
	return curriculum.DumpJSON(os.Stdout, structure, config.JSONIndent)
}

func main() {
	if len(os.Args) < 3 {
		usage()
	}
	loadConfig()

	command, path := os.Args[1], os.Args[2]

	var err error
	switch command {
	case "parse":
		err = parseCmd(path)
	case "summary":
		err = summaryCmd(path)
	case "inspect":
		sheet := ""
		if len(os.Args) > 3 {
			sheet = os.Args[3]
		}
		err = inspectCmd(path, sheet)
	default:
		usage()
	}

	if err != nil {
		log.Fatalf("ERROR: While processing %s %s: %v\n", command, path, err)
	}
}
