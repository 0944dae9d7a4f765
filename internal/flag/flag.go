// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package flag

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/posener/complete"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/trx"
	"github.com/Factom-Asset-Tokens/fiod/fio/validate"
	_log "github.com/Factom-Asset-Tokens/fiod/log"
)

var Revision string

// Environment variable name prefix
const envNamePrefix = "FIOD_"

var (
	envNames = map[string]string{
		"debug":   "DEBUG",
		"logfile": "LOG_FILE",

		"apiaddress":  "API_ADDRESS",
		"apiusername": "API_USERNAME",
		"apipassword": "API_PASSWORD",
		"apitlscert":  "API_TLS_CERT",
		"apitlskey":   "API_TLS_KEY",
		"apitimeout":  "API_TIMEOUT",
		"metrics":     "METRICS",

		"fionode":            "FIO_NODE",
		"registrationserver": "REGISTRATION_SERVER",
		"fiotimeout":         "FIO_TIMEOUT",
		"debugrequest":       "DEBUG_REQUEST",
		"chainid":            "CHAIN_ID",

		"key":         "KEY",
		"tpid":        "TPID",
		"trxlifetime": "TRX_LIFETIME",
	}
	defaults = map[string]interface{}{
		"debug":   false,
		"logfile": "",

		"apiaddress":  ":8078",
		"apiusername": "",
		"apipassword": "",
		"apitlscert":  "",
		"apitlskey":   "",
		"apitimeout":  30 * time.Second,
		"metrics":     false,

		"fionode":            fio.NodeDefault,
		"registrationserver": "",
		"fiotimeout":         15 * time.Second,
		"debugrequest":       false,

		"tpid":        "",
		"trxlifetime": trx.DefaultLifetime,
	}
	descriptions = map[string]string{
		"debug":   "Log debug messages",
		"logfile": "Write logs to this file, rotated by size, instead of stderr",

		"apiaddress":  "IPAddr:port# to bind to for serving the fiod API",
		"apiusername": "Username required for connections to fiod API",
		"apipassword": "Password required for connections to fiod API",
		"apitlscert":  "Path to TLS certificate for the fiod API",
		"apitlskey":   "Path to TLS Key for the fiod API",
		"apitimeout":  "Maximum amount of time to allow API requests to complete",
		"metrics":     "Serve prometheus metrics at /metrics",

		"fionode":            "URL of the FIO node API, without /v1",
		"registrationserver": "URL of the server that registers FIO names on behalf of users",
		"fiotimeout":         "Timeout for FIO node requests, 0 means never timeout",
		"debugrequest":       "Print every FIO node request and response",
		"chainid":            "Refuse to start unless the FIO node reports this chain ID",

		"key":         "FIO private key in WIF used to sign all transactions",
		"tpid":        "Default technology provider FIO address for transactions",
		"trxlifetime": "Time until a broadcast transaction expires, at most 1h",
	}
	flags = complete.Flags{
		"-debug":   complete.PredictNothing,
		"-logfile": complete.PredictFiles("*.log"),

		"-apiaddress":  complete.PredictAnything,
		"-apiusername": complete.PredictAnything,
		"-apipassword": complete.PredictAnything,
		"-apitlscert":  complete.PredictFiles("*.cert"),
		"-apitlskey":   complete.PredictFiles("*.key"),
		"-apitimeout":  complete.PredictAnything,
		"-metrics":     complete.PredictNothing,

		"-fionode":            complete.PredictAnything,
		"-registrationserver": complete.PredictAnything,
		"-fiotimeout":         complete.PredictAnything,
		"-debugrequest":       complete.PredictNothing,
		"-chainid": complete.PredictSet(
			"21dcae42c0182200e93f954a074011f9048a7624c6fe81d3c9541a614a88bd1c",
			"b20901380af44ef59c5918439a1f9a41d83669020319a80574b804a5f95cbd7e"),

		"-key":         complete.PredictNothing,
		"-tpid":        complete.PredictAnything,
		"-trxlifetime": complete.PredictSet("10m", "30m", "1h"),

		"-y":                   complete.PredictNothing,
		"-installcompletion":   complete.PredictNothing,
		"-uninstallcompletion": complete.PredictNothing,
	}

	LogDebug bool
	LogFile  string

	APIAddress string
	APITimeout time.Duration
	Metrics    bool

	FIOClient = fio.NewClient()
	ChainID   fio.Bytes32

	Key         fio.PrivateKey
	TPID        string
	TrxLifetime time.Duration

	flagset    map[string]bool
	log        _log.Log
	Completion *complete.Complete

	HasAuth  bool
	Username string
	Password string

	HasTLS      bool
	TLSCertFile string
	TLSKeyFile  string
)

func init() {
	flagVar(&LogDebug, "debug")
	flagVar(&LogFile, "logfile")

	flagVar(&APIAddress, "apiaddress")
	flagVar(&APITimeout, "apitimeout")
	flagVar(&Metrics, "metrics")
	flagVar(&Username, "apiusername")
	flagVar(&Password, "apipassword")
	flagVar(&TLSCertFile, "apitlscert")
	flagVar(&TLSKeyFile, "apitlskey")

	flagVar(&FIOClient.NodeServer, "fionode")
	flagVar(&FIOClient.RegistrationServer, "registrationserver")
	flagVar(&FIOClient.Timeout, "fiotimeout")
	flagVar(&FIOClient.DebugRequest, "debugrequest")
	flagVar(&ChainID, "chainid")

	flagVar(&Key, "key")
	flagVar(&TPID, "tpid")
	flagVar(&TrxLifetime, "trxlifetime")

	// Add flags for self installing the CLI completion tool
	Completion = complete.New(os.Args[0], complete.Command{Flags: flags})
	Completion.CLI.InstallName = "installcompletion"
	Completion.CLI.UninstallName = "uninstallcompletion"
	Completion.AddFlags(nil)
}

func Parse() {
	flag.Parse()
	flagset = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flagset[f.Name] = true })

	// Load options from environment variables if they haven't been
	// specified on the command line.
	loadFromEnv(&LogDebug, "debug")
	loadFromEnv(&LogFile, "logfile")

	setupLogger()

	loadFromEnv(&APIAddress, "apiaddress")
	loadFromEnv(&APITimeout, "apitimeout")
	loadFromEnv(&Metrics, "metrics")
	loadFromEnv(&Username, "apiusername")
	loadFromEnv(&Password, "apipassword")
	loadFromEnv(&TLSCertFile, "apitlscert")
	loadFromEnv(&TLSKeyFile, "apitlskey")

	loadFromEnv(&FIOClient.NodeServer, "fionode")
	loadFromEnv(&FIOClient.RegistrationServer, "registrationserver")
	loadFromEnv(&FIOClient.Timeout, "fiotimeout")
	loadFromEnv(&FIOClient.DebugRequest, "debugrequest")
	loadFromEnv(&ChainID, "chainid")

	loadFromEnv(&Key, "key")
	loadFromEnv(&TPID, "tpid")
	loadFromEnv(&TrxLifetime, "trxlifetime")
}

func Validate() {
	// Redact private data from debug output.
	key := `""`
	if !Key.IsZero() {
		key = "<redacted>"
	}
	apiPassword := `""`
	if len(Password) > 0 {
		apiPassword = "<redacted>"
	}

	log.Debugf("-apiaddress         %#v", APIAddress)
	log.Debugf("-apitimeout         %v ", APITimeout)
	log.Debugf("-metrics            %v ", Metrics)
	debugPrintln()

	log.Debugf("-fionode            %q", FIOClient.NodeServer)
	log.Debugf("-registrationserver %q", FIOClient.RegistrationServer)
	log.Debugf("-fiotimeout         %v ", FIOClient.Timeout)
	log.Debugf("-chainid            %v ", ChainID)
	debugPrintln()

	log.Debugf("-key                %v ", key)
	log.Debugf("-tpid               %q", TPID)
	log.Debugf("-trxlifetime        %v ", TrxLifetime)
	debugPrintln()

	log.Debugf("-apiusername        %#v", Username)
	log.Debugf("-apipassword        %v ", apiPassword)
	log.Debugf("-apitlscert         %#v", TLSCertFile)
	log.Debugf("-apitlskey          %#v", TLSKeyFile)
	debugPrintln()

	if Key.IsZero() {
		log.Fatal("-key is required")
	}
	if len(TPID) > 0 && !validate.IsFIOAddress(TPID) {
		log.Fatalf("-tpid %q: invalid FIO address", TPID)
	}
	if TrxLifetime < time.Second || TrxLifetime > trx.MaxLifetime {
		log.Fatalf("-trxlifetime must be between 1s and %v", trx.MaxLifetime)
	}

	if len(Username) > 0 || len(Password) > 0 {
		if len(Username) == 0 || len(Password) == 0 {
			log.Fatal("-apiusername and -apipassword must be used together")
		}
		HasAuth = true
	}
	if len(TLSCertFile) > 0 || len(TLSKeyFile) > 0 {
		if len(TLSCertFile) == 0 || len(TLSKeyFile) == 0 {
			log.Fatal("-apitlscert and -apitlskey must be used together")
		}
		HasTLS = true
	}
}

// HasChainID reports whether -chainid was set.
func HasChainID() bool {
	return !ChainID.IsZero()
}

func flagVar(v interface{}, name string) {
	dflt := defaults[name]
	desc := description(name)
	switch v := v.(type) {
	case *string:
		flag.StringVar(v, name, dflt.(string), desc)
	case *time.Duration:
		flag.DurationVar(v, name, dflt.(time.Duration), desc)
	case *uint64:
		flag.Uint64Var(v, name, dflt.(uint64), desc)
	case *int64:
		flag.Int64Var(v, name, dflt.(int64), desc)
	case *bool:
		flag.BoolVar(v, name, dflt.(bool), desc)
	case flag.Value:
		flag.Var(v, name, desc)
	}
}

func loadFromEnv(v interface{}, flagName string) {
	if flagset[flagName] {
		return
	}
	eName := envName(flagName)
	eVar, ok := os.LookupEnv(eName)
	if len(eVar) > 0 {
		switch v := v.(type) {
		case flag.Value:
			if err := v.Set(eVar); err != nil {
				log.Fatalf("Environment Variable %v: %v", eName, err)
			}
		case *string:
			*v = eVar
		case *time.Duration:
			duration, err := time.ParseDuration(eVar)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"time.ParseDuration(\"%v\"): %v",
					eName, eVar, err)
			}
			*v = duration
		case *uint64:
			val, err := strconv.ParseUint(eVar, 10, 64)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"strconv.ParseUint(\"%v\", 10, 64): %v",
					eName, eVar, err)
			}
			*v = val
		case *int64:
			val, err := strconv.ParseInt(eVar, 10, 64)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"strconv.ParseInt(\"%v\", 10, 64): %v",
					eName, eVar, err)
			}
			*v = val
		case *bool:
			if ok {
				*v = true
			}
		}
	}
}

func debugPrintln() {
	if LogDebug {
		fmt.Println()
	}
}

func envName(flagName string) string {
	return envNamePrefix + envNames[flagName]
}
func description(flagName string) string {
	return fmt.Sprintf("%s\nEnvironment variable: %v",
		descriptions[flagName], envName(flagName))
}

// setupLogger applies -debug and -logfile to every Log created from now on.
func setupLogger() {
	_log.Debug = LogDebug
	_log.File = LogFile
	log = _log.New("flag")
}
