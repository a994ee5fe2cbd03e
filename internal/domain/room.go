package domain

import "time"

// Room представляет комнату с участниками.
// Комната владеет списком Users: мутации состава проходят только через её методы.
type Room struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	ClosedOn  *time.Time `json:"closed_on,omitempty"`
	Version   int64      `json:"-"`
	Users     []User     `json:"users"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsClosed возвращает true если комната закрыта (членство заморожено)
func (r *Room) IsClosed() bool {
	return r.ClosedOn != nil
}

// RemoveUser удаляет участника из комнаты.
// Мутация выполняется только в памяти, запись в хранилище остается за вызывающим.
func (r *Room) RemoveUser(userID uint64) error {
	if r.IsClosed() {
		return NewBadRequestError("room.ClosedOn", "room is already closed")
	}

	for i, user := range r.Users {
		if user.ID == userID {
			r.Users = append(r.Users[:i], r.Users[i+1:]...)
			return nil
		}
	}

	return NewNotFoundError("id", "user is not a member of the room")
}

// AddUser добавляет участника в комнату
func (r *Room) AddUser(user User) error {
	if r.IsClosed() {
		return NewBadRequestError("room.ClosedOn", "room is already closed")
	}

	r.Users = append(r.Users, user)
	return nil
}
