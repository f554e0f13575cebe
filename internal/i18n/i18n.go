// Package i18n translates UI strings. Keys are the English text.
package i18n

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

// LangEnv overrides the detected language.
const LangEnv = "TABATA_LANG"

var supported = []string{"en", "pt", "es", "ru"}

var translations = map[string]map[string]string{
	"Press to start": {
		"pt": "Toque para iniciar",
		"es": "Pulsa para empezar",
		"ru": "Нажмите, чтобы начать",
	},
	"GET READY": {
		"pt": "PREPARE-SE",
		"es": "PREPÁRATE",
		"ru": "ПРИГОТОВЬТЕСЬ",
	},
	"WORK": {
		"pt": "TREINO",
		"es": "TRABAJO",
		"ru": "РАБОТА",
	},
	"REST": {
		"pt": "DESCANSO",
		"es": "DESCANSO",
		"ru": "ОТДЫХ",
	},
	"PAUSED": {
		"pt": "PAUSADO",
		"es": "EN PAUSA",
		"ru": "ПАУЗА",
	},
	"Workout Complete!": {
		"pt": "Treino concluído!",
		"es": "¡Entrenamiento completado!",
		"ru": "Тренировка завершена!",
	},
	"Round": {
		"pt": "Rodada",
		"es": "Ronda",
		"ru": "Раунд",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
		"ru": "Пауза",
	},
	"Resume": {
		"pt": "Continuar",
		"es": "Reanudar",
		"ru": "Продолжить",
	},
	"Reset": {
		"pt": "Reiniciar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Settings": {
		"pt": "Configurações",
		"es": "Ajustes",
		"ru": "Настройки",
	},
	"Show timer": {
		"pt": "Mostrar timer",
		"es": "Mostrar temporizador",
		"ru": "Показать таймер",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
		"ru": "Выход",
	},
	"Work (seconds)": {
		"pt": "Treino (segundos)",
		"es": "Trabajo (segundos)",
		"ru": "Работа (секунды)",
	},
	"Rest (seconds)": {
		"pt": "Descanso (segundos)",
		"es": "Descanso (segundos)",
		"ru": "Отдых (секунды)",
	},
	"Rounds": {
		"pt": "Rodadas",
		"es": "Rondas",
		"ru": "Раунды",
	},
	"Get ready (seconds)": {
		"pt": "Preparação (segundos)",
		"es": "Preparación (segundos)",
		"ru": "Подготовка (секунды)",
	},
	"Rest after the final round": {
		"pt": "Descansar após a última rodada",
		"es": "Descansar tras la última ronda",
		"ru": "Отдых после последнего раунда",
	},
	"Sound cues": {
		"pt": "Sinais sonoros",
		"es": "Señales sonoras",
		"ru": "Звуковые сигналы",
	},
	"Keep screen awake": {
		"pt": "Manter a tela ligada",
		"es": "Mantener la pantalla encendida",
		"ru": "Не выключать экран",
	},
	"Apply": {
		"pt": "Aplicar",
		"es": "Aplicar",
		"ru": "Применить",
	},
	"Defaults": {
		"pt": "Padrões",
		"es": "Predeterminados",
		"ru": "По умолчанию",
	},
	"Cancel": {
		"pt": "Cancelar",
		"es": "Cancelar",
		"ru": "Отмена",
	},
	"Settings applied!": {
		"pt": "Configurações aplicadas!",
		"es": "¡Ajustes aplicados!",
		"ru": "Настройки применены!",
	},
	"Please pause or reset the timer before changing settings.": {
		"pt": "Pause ou reinicie o timer antes de alterar as configurações.",
		"es": "Pausa o reinicia el temporizador antes de cambiar los ajustes.",
		"ru": "Поставьте таймер на паузу или сбросьте его перед изменением настроек.",
	},
	"Press Space to start/pause • Press R to reset": {
		"pt": "Espaço inicia/pausa • R reinicia",
		"es": "Espacio para iniciar/pausar • R para reiniciar",
		"ru": "Пробел — старт/пауза • R — сброс",
	},
	"Press Q to quit": {
		"pt": "Q para sair",
		"es": "Q para salir",
		"ru": "Q — выход",
	},
	"%d rounds × (%ds work + %ds rest) = %ds": {
		"pt": "%d rodadas × (%ds treino + %ds descanso) = %ds",
		"es": "%d rondas × (%ds trabajo + %ds descanso) = %ds",
		"ru": "%d раундов × (%dс работы + %dс отдыха) = %dс",
	},
}

var (
	langMu   sync.RWMutex
	lang     string
	langOnce sync.Once
)

// T returns the translation of key in the active language.
func T(key string) string {
	if translated, ok := translations[key][Lang()]; ok {
		return translated
	}
	return key
}

// Lang returns the active language code.
func Lang() string {
	langOnce.Do(func() {
		detected := detect()
		langMu.Lock()
		lang = detected
		langMu.Unlock()
	})
	langMu.RLock()
	defer langMu.RUnlock()
	return lang
}

// SetLang forces the active language. Unknown codes fall back to English.
func SetLang(code string) {
	langOnce.Do(func() {})
	langMu.Lock()
	lang = normalize(code)
	langMu.Unlock()
}

func detect() string {
	if forced := strings.TrimSpace(os.Getenv(LangEnv)); forced != "" {
		log.Printf("i18n: %s is set to %q", LangEnv, forced)
		return normalize(forced)
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		log.Printf("i18n: no user locale detected, defaulting to english")
		return "en"
	}
	detected := normalize(userLocales[0])
	log.Printf("i18n: detected locale %s, language set to %s", userLocales[0], detected)
	return detected
}

func normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, candidate := range supported {
		if strings.HasPrefix(code, candidate) {
			return candidate
		}
	}
	return "en"
}
