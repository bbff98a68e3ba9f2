package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log é a instância global do logger. Já nasce utilizável (nível info, texto)
// para que pacotes e testes não dependam de Init.
var Log = logrus.New()

// Init configura o logger global. Deve ser chamado uma vez no main de cada binário.
// level/format vazios caem nas variáveis LOG_LEVEL e LOG_FORMAT, depois em "info"/"text".
func Init(level, format string, out io.Writer) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if out == nil {
		out = os.Stdout
	}
	Log.SetOutput(out)
}

// For retorna uma entrada marcada com o subsistema (ex: "scene", "render", "net").
func For(sys string) *logrus.Entry {
	return Log.WithField("sys", sys)
}
