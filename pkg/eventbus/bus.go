// Package eventbus — локальная шина событий внутри процесса игры.
// Контракт минимальный: "что-то изменилось, перечитай, если тебе важно";
// полезной нагрузки у событий нет.
package eventbus

import "sync"

type Bus struct {
	mu   sync.Mutex
	subs map[string][]func()
}

func New() *Bus {
	return &Bus{subs: make(map[string][]func())}
}

// Subscribe регистрирует обработчик темы. Обработчики вызываются
// синхронно в порядке подписки.
func (b *Bus) Subscribe(topic string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], fn)
}

func (b *Bus) Publish(topic string) {
	b.mu.Lock()
	handlers := append([]func(){}, b.subs[topic]...)
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
