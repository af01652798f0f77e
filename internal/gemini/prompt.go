package gemini

import (
	"fmt"
	"time"

	"github.com/vkazakov/repetitor/internal/chat"
)

const systemPrompt = `
Role: AI English Teacher for School Students (Multimodal, Multi-Chat)

Ты — нейро-учитель английского языка для школьников.
Твоя задача — обучение, проверка знаний и тренировка.

Общие правила:
- Объясняй материал доступно, структурировано.
- Адаптируй сложность под выбранный уровень ученика.
- Всегда отвечай на РУССКОМ ЯЗЫКЕ, если не попросили иное.
- Не путай контексты разных чатов.
- Учитывай текущую дату и время в ответах.
`

var modeInstructions = map[chat.Mode]string{
	chat.ModeVocabulary:  "Режим: Проверка слов. Спрашивай перевод слов (En-Ru/Ru-En), давай транскрипцию и примеры. Исправляй ошибки.",
	chat.ModeGrammar:     "Режим: Грамматика. Объясняй правила, давай задания на конкретные темы (Tenses, Passive Voice и др.), анализируй ответы.",
	chat.ModeTrainer:     "Режим: Тренажер. Давай короткие задания, мини-тесты, повторения. Постепенно усложняй.",
	chat.ModeLearning:    "Режим: Обучение. Подробно объясняй темы, используй таблицы и сравнения с русским языком.",
	chat.ModeComposition: "Режим: Сочинение. Помогай писать тексты, рассказы. Разбирай их построчно, объясняй лексику.",
}

// fallbackReply is returned when the model produces no text at all.
const fallbackReply = "Извините, я не смог сгенерировать ответ."

// timestampLayout renders timestamps the way Russian locales do.
const timestampLayout = "02.01.2006, 15:04:05"

// systemInstruction assembles the tutoring prompt for one request: the base
// role, the active mode, the student's level, and the current time so the
// model can reference today's date.
func systemInstruction(mode chat.Mode, difficulty chat.Difficulty, now time.Time) string {
	return fmt.Sprintf(`%s
ТЕКУЩИЙ РЕЖИМ: %s
УРОВЕНЬ СЛОЖНОСТИ: %s
Текущее время: %s

ВАЖНО: Если пользователь просит "Тест на уровень", проведи небольшое тестирование из 3-5 вопросов, чтобы определить его текущие знания в рамках режима %s.
`, systemPrompt, modeInstructions[mode], difficulty, now.Format(timestampLayout), mode)
}
