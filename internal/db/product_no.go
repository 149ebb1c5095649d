package db

import (
	"database/sql"

	"inventoryTracker/internal/logger"
)

// addProductNo adds the per-user product number to inventory. Files written by
// earlier builds may already carry the column. Either way every row without a
// number is given the next one for its owner, in ascending id order.
func addProductNo(tx *sql.Tx) error {
	has, err := columnExists(tx, "inventory", "product_no")
	if err != nil {
		return err
	}
	if !has {
		if _, err := tx.Exec(`ALTER TABLE inventory ADD COLUMN product_no INTEGER`); err != nil {
			return err
		}
	}
	n, err := numberUnnumbered(tx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Infof("backfilled product_no for %d existing products", n)
	}
	_, err = tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_inventory_user_product_no ON inventory(user_id, product_no)`)
	return err
}

// numberUnnumbered assigns product_no to rows where it is NULL, continuing
// after the highest number each owner already holds.
func numberUnnumbered(tx *sql.Tx) (int, error) {
	last := map[int64]int64{}
	rows, err := tx.Query(`SELECT user_id, MAX(product_no) FROM inventory WHERE product_no IS NOT NULL GROUP BY user_id`)
	if err != nil {
		return 0, err
	}
	for rows.Next() {
		var uid, no int64
		if err := rows.Scan(&uid, &no); err != nil {
			_ = rows.Close()
			return 0, err
		}
		last[uid] = no
	}
	err = rows.Err()
	_ = rows.Close()
	if err != nil {
		return 0, err
	}

	type pending struct{ id, uid int64 }
	var todo []pending
	rows, err = tx.Query(`SELECT id, user_id FROM inventory WHERE product_no IS NULL ORDER BY user_id, id`)
	if err != nil {
		return 0, err
	}
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.uid); err != nil {
			_ = rows.Close()
			return 0, err
		}
		todo = append(todo, p)
	}
	err = rows.Err()
	_ = rows.Close()
	if err != nil {
		return 0, err
	}

	for _, p := range todo {
		last[p.uid]++
		if _, err := tx.Exec(`UPDATE inventory SET product_no = ? WHERE id = ?`, last[p.uid], p.id); err != nil {
			return 0, err
		}
	}
	return len(todo), nil
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
