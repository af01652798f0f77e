package ui

import "github.com/vkazakov/repetitor/internal/chat"

// ModeLabels are the display names for the learning modes.
var ModeLabels = map[chat.Mode]string{
	chat.ModeVocabulary:  "Слова",
	chat.ModeGrammar:     "Грамматика",
	chat.ModeTrainer:     "Тренажер",
	chat.ModeLearning:    "Обучение",
	chat.ModeComposition: "Сочинение",
}

// DifficultyLabels are the display names for the difficulty levels.
var DifficultyLabels = map[chat.Difficulty]string{
	chat.DifficultyEasy:   "Легкий (A1-A2)",
	chat.DifficultyMedium: "Средний (B1-B2)",
	chat.DifficultyHard:   "Сложный (C1+)",
}

// ModeSuggestions are ready-made first prompts shown on the welcome screen,
// keyed by the active learning mode.
var ModeSuggestions = map[chat.Mode][]string{
	chat.ModeVocabulary:  {"Тест на уровень лексики", "Топ 100 глаголов", "Еда и напитки", "Путешествия", "Спорт и хобби", "Профессии", "Чувства и эмоции"},
	chat.ModeGrammar:     {"Тест на уровень грамматики", "Present Simple", "Irregular Verbs", "Articles", "Conditional Sentences", "Passive Voice", "Reported Speech"},
	chat.ModeTrainer:     {"Быстрая разминка", "Мини-тест: Времена", "Перевод предложений", "Заполни пропуски", "Найди ошибку"},
	chat.ModeLearning:    {"Как учить английский?", "Разница между Do и Make", "Секреты произношения", "Идиомы о погоде", "Фразовые глаголы"},
	chat.ModeComposition: {"Написать письмо другу", "Рассказ о себе", "Описание картинки", "Мой любимый фильм", "План на лето", "Эссе: Плюсы технологий"},
}
