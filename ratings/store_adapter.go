package ratings

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// StoreAdapter 把评分数据存进任意 core.Store（Memory/Redis 等）。
//
// key 布局：
//
//	用户评分画像：{KeyPrefix}:user:{userID} -> JSON {"itemID": value}
//	用户列表：    {KeyPrefix}:users         -> JSON [userID]
//
// 读改写没有跨进程的原子性保证；多写入方场景请换用数据库后端（Gorm）。
type StoreAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀
	KeyPrefix string
}

// NewStoreAdapter 创建一个基于 core.Store 的评分存储。
func NewStoreAdapter(s core.Store, keyPrefix string) *StoreAdapter {
	if keyPrefix == "" {
		keyPrefix = "ratings"
	}
	return &StoreAdapter{store: s, KeyPrefix: keyPrefix}
}

func (a *StoreAdapter) Name() string { return "store(" + a.store.Name() + ")" }

func (a *StoreAdapter) userKey(userID int64) string {
	return a.KeyPrefix + ":user:" + strconv.FormatInt(userID, 10)
}

func (a *StoreAdapter) usersKey() string {
	return a.KeyPrefix + ":users"
}

func (a *StoreAdapter) loadUsers(ctx context.Context) ([]int64, error) {
	data, err := a.store.Get(ctx, a.usersKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var users []int64
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *StoreAdapter) loadRow(ctx context.Context, userID int64) (map[int64]float64, error) {
	data, err := a.store.Get(ctx, a.userKey(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return make(map[int64]float64), nil
		}
		return nil, err
	}
	// JSON object key 只能是 string，读回时转回 int64
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	row := make(map[int64]float64, len(raw))
	for k, v := range raw {
		iid, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		row[iid] = v
	}
	return row, nil
}

func (a *StoreAdapter) saveRow(ctx context.Context, userID int64, row map[int64]float64) error {
	raw := make(map[string]float64, len(row))
	for iid, v := range row {
		raw[strconv.FormatInt(iid, 10)] = v
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.userKey(userID), data)
}

func (a *StoreAdapter) AllRatings(ctx context.Context) ([]core.Rating, error) {
	users, err := a.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	var out []core.Rating
	for _, uid := range users {
		row, err := a.loadRow(ctx, uid)
		if err != nil {
			return nil, err
		}
		itemIDs := make([]int64, 0, len(row))
		for iid := range row {
			itemIDs = append(itemIDs, iid)
		}
		sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })
		for _, iid := range itemIDs {
			out = append(out, core.Rating{UserID: uid, ItemID: iid, Value: row[iid]})
		}
	}
	return out, nil
}

func (a *StoreAdapter) RatingsFor(ctx context.Context, userID int64) (map[int64]float64, error) {
	return a.loadRow(ctx, userID)
}

func (a *StoreAdapter) Upsert(ctx context.Context, userID, itemID int64, value float64) error {
	if err := core.ValidateRating(value); err != nil {
		return err
	}

	row, err := a.loadRow(ctx, userID)
	if err != nil {
		return err
	}
	row[itemID] = value
	if err := a.saveRow(ctx, userID, row); err != nil {
		return err
	}

	users, err := a.loadUsers(ctx)
	if err != nil {
		return err
	}
	for _, uid := range users {
		if uid == userID {
			return nil
		}
	}
	users = append(users, userID)
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.usersKey(), data)
}

func (a *StoreAdapter) DeleteAll(ctx context.Context, userID int64) error {
	if err := a.store.Delete(ctx, a.userKey(userID)); err != nil {
		return err
	}

	users, err := a.loadUsers(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, uid := range users {
		if uid != userID {
			kept = append(kept, uid)
		}
	}
	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.usersKey(), data)
}

var _ core.RatingStore = (*StoreAdapter)(nil)
