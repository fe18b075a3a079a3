// ixdecode 离线解码 Token-2022 指令数据，便于排查链上数据。
//
// 用法：
//
//	ixdecode [-e base58|base64|hex] [-o json|yaml] [data ...]
//
// 不带参数时从标准输入逐行读取。
package main

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mr-tron/base58"
	"gopkg.in/yaml.v3"

	"token-decoder-sol/pkg/token2022"
)

const (
	encodingBase58 = "base58"
	encodingBase64 = "base64"
	encodingHex    = "hex"

	outputJSON = "json"
	outputYAML = "yaml"
)

var errUnsupported = errors.New("unsupported option")

type decodedDoc struct {
	Type        string                     `json:"type" yaml:"type"`
	Instruction token2022.TokenInstruction `json:"instruction" yaml:"instruction"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run 返回进程退出码：全部成功为 0，有解码失败为 1，参数错误为 2
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ixdecode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	enc := fs.String("e", encodingBase58, "input encoding: base58 | base64 | hex")
	out := fs.String("o", outputJSON, "output format: json | yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := checkOptions(*enc, *out); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(stderr, "read stdin: %v\n", err)
			return 2
		}
	}

	exitCode := 0
	for _, input := range inputs {
		text, err := decodeLine(input, *enc, *out)
		if err != nil {
			fmt.Fprintf(stdout, "error: %v\n", err)
			exitCode = 1
			continue
		}
		fmt.Fprintln(stdout, text)
	}
	return exitCode
}

func checkOptions(enc, out string) error {
	switch enc {
	case encodingBase58, encodingBase64, encodingHex:
	default:
		return fmt.Errorf("%w: encoding %q", errUnsupported, enc)
	}
	switch out {
	case outputJSON, outputYAML:
	default:
		return fmt.Errorf("%w: output %q", errUnsupported, out)
	}
	return nil
}

func decodeLine(input, enc, out string) (string, error) {
	data, err := decodeInput(input, enc)
	if err != nil {
		return "", err
	}
	ix, err := token2022.DecodeInstruction(data)
	if err != nil {
		return "", err
	}
	return render(ix, out)
}

func decodeInput(input, enc string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch enc {
	case encodingBase58:
		data, err = base58.Decode(input)
	case encodingBase64:
		data, err = base64.StdEncoding.DecodeString(input)
	case encodingHex:
		data, err = hex.DecodeString(strings.TrimPrefix(input, "0x"))
	default:
		return nil, fmt.Errorf("%w: encoding %q", errUnsupported, enc)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s input: %w", enc, err)
	}
	return data, nil
}

func render(ix token2022.TokenInstruction, out string) (string, error) {
	doc := decodedDoc{Type: token2022.InstructionName(ix), Instruction: ix}
	switch out {
	case outputYAML:
		b, err := yaml.Marshal(doc)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(b), "\n"), nil
	case outputJSON:
		b, err := json.Marshal(doc)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("%w: output %q", errUnsupported, out)
	}
}
