package smartaccount

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// DefaultProgramID 智能账户程序的公开部署地址
// 可以通过 Option.ProgramID 覆盖以指向其他部署目标
var DefaultProgramID = solana.MustPublicKeyFromBase58("SAc1xw43aB1HFGk4Cc4deAi3JMaFyf5VscnWiGgiZtZ")

// AccountReader 读取链上账户原始数据的最小能力
// *rpc.Client 和 *Provider 都满足该接口
type AccountReader interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
}

// Composer 把操作意图组装成未签名交易
// 只负责拼装指令数据和账户列表，账户顺序和签名/可写标记必须与链上程序的
// 约定完全一致，否则交易会在提交时被程序拒绝
//
// 所有组装方法都不访问网络，也不持有可变状态，可以并发使用
type Composer struct {
	client     AccountReader
	owner      solana.PublicKey
	programID  solana.PublicKey
	commitment rpc.CommitmentType
}

// NewComposer 创建交易组装器
// client 只需要提供账户读取能力，GetState 之外的方法允许传 nil
// owner 默认所有者，各方法不显式传owner时使用它
func NewComposer(client AccountReader, owner solana.PublicKey, option ...Option) *Composer {
	c := &Composer{
		client:     client,
		owner:      owner,
		programID:  DefaultProgramID,
		commitment: rpc.CommitmentFinalized,
	}
	if len(option) > 0 {
		if !option[0].ProgramID.IsZero() {
			c.programID = option[0].ProgramID
		}
		if option[0].Commitment != "" {
			c.commitment = option[0].Commitment
		}
	}
	return c
}

// ProgramID 返回组装器当前使用的程序地址
func (c *Composer) ProgramID() solana.PublicKey {
	return c.programID
}

// Address 派生某个所有者的智能账户地址，不传owner时使用默认所有者
func (c *Composer) Address(owner ...solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveSmartAccount(c.ownerOr(owner), c.programID)
}

// Initialize 组装初始化智能账户的交易
// 账户顺序：智能账户(可写) 所有者(签名) 系统程序
func (c *Composer) Initialize(owner ...solana.PublicKey) (*Transaction, error) {
	own := c.ownerOr(owner)
	smart, _, err := DeriveSmartAccount(own, c.programID)
	if err != nil {
		return nil, err
	}
	ix := NewBaseInstruction(c.programID, []*solana.AccountMeta{
		{PublicKey: smart, IsWritable: true},
		{PublicKey: own, IsSigner: true},
		{PublicKey: solana.SystemProgramID},
	}, InstructionDiscriminator("initialize"))
	return &Transaction{Instructions: []solana.Instruction{ix}}, nil
}

// AddDelegate 组装添加委托人的交易
// 委托人数量上限由链上程序检查，这里不做限制
func (c *Composer) AddDelegate(delegate solana.PublicKey, owner ...solana.PublicKey) (*Transaction, error) {
	return c.delegateOp("add_delegate", delegate, c.ownerOr(owner))
}

// RemoveDelegate 组装移除委托人的交易
func (c *Composer) RemoveDelegate(delegate solana.PublicKey, owner ...solana.PublicKey) (*Transaction, error) {
	return c.delegateOp("remove_delegate", delegate, c.ownerOr(owner))
}

func (c *Composer) delegateOp(method string, delegate, owner solana.PublicKey) (*Transaction, error) {
	if delegate.IsZero() {
		return nil, fmt.Errorf("%s: delegate is required", method)
	}
	smart, _, err := DeriveSmartAccount(owner, c.programID)
	if err != nil {
		return nil, err
	}
	data := append(InstructionDiscriminator(method), delegate.Bytes()...)
	ix := NewBaseInstruction(c.programID, c.ownerAccounts(smart, owner), data)
	return &Transaction{Instructions: []solana.Instruction{ix}}, nil
}

// Pause 组装暂停智能账户的交易，暂停后程序会拒绝所有execute操作
func (c *Composer) Pause(owner ...solana.PublicKey) (*Transaction, error) {
	return c.flagOp("pause", c.ownerOr(owner))
}

// Unpause 组装恢复智能账户的交易
func (c *Composer) Unpause(owner ...solana.PublicKey) (*Transaction, error) {
	return c.flagOp("unpause", c.ownerOr(owner))
}

func (c *Composer) flagOp(method string, owner solana.PublicKey) (*Transaction, error) {
	smart, _, err := DeriveSmartAccount(owner, c.programID)
	if err != nil {
		return nil, err
	}
	ix := NewBaseInstruction(c.programID, c.ownerAccounts(smart, owner), InstructionDiscriminator(method))
	return &Transaction{Instructions: []solana.Instruction{ix}}, nil
}

// ExecuteNativeTransfer 组装由委托人发起的SOL转账
// 附加账户顺序：系统程序(只读) 智能账户(可写) 收款人(可写)
func (c *Composer) ExecuteNativeTransfer(smartAccountOwner, delegate, recipient solana.PublicKey, lamports uint64) (*Transaction, error) {
	if recipient.IsZero() {
		return nil, errors.New("execute native transfer: recipient is required")
	}
	return c.execute(smartAccountOwner, delegate, &NativeTransferData{Amount: lamports}, func(smart solana.PublicKey) []*solana.AccountMeta {
		return []*solana.AccountMeta{
			{PublicKey: solana.SystemProgramID},
			{PublicKey: smart, IsWritable: true},
			{PublicKey: recipient, IsWritable: true},
		}
	})
}

// ExecuteTokenTransfer 组装由委托人发起的代币转账
// 附加账户顺序：代币程序(只读) 来源账户(可写) 目标账户(可写) 智能账户(只读)
func (c *Composer) ExecuteTokenTransfer(smartAccountOwner, delegate, from, to solana.PublicKey, amount uint64, variant TokenProgramVariant) (*Transaction, error) {
	tokenProgram, err := variant.ProgramID()
	if err != nil {
		return nil, err
	}
	if from.IsZero() || to.IsZero() {
		return nil, errors.New("execute token transfer: from and to accounts are required")
	}
	return c.execute(smartAccountOwner, delegate, &TokenTransferData{Amount: amount}, func(smart solana.PublicKey) []*solana.AccountMeta {
		return []*solana.AccountMeta{
			{PublicKey: tokenProgram},
			{PublicKey: from, IsWritable: true},
			{PublicKey: to, IsWritable: true},
			{PublicKey: smart},
		}
	})
}

// ExecuteCustom 组装任意子指令的转发
// payload 原样转发，结构不做校验；accounts 追加在目标程序之后
func (c *Composer) ExecuteCustom(smartAccountOwner, delegate, targetProgram solana.PublicKey, payload []byte, accounts []*solana.AccountMeta) (*Transaction, error) {
	if targetProgram.IsZero() {
		return nil, errors.New("execute custom: target program is required")
	}
	return c.execute(smartAccountOwner, delegate, &RawData{Data: payload}, func(smart solana.PublicKey) []*solana.AccountMeta {
		extra := make([]*solana.AccountMeta, 0, len(accounts)+1)
		extra = append(extra, &solana.AccountMeta{PublicKey: targetProgram})
		extra = append(extra, accounts...)
		return extra
	})
}

// execute 所有转发类操作共用的组装逻辑
// 核心账户对 [智能账户, 委托人(签名)] 固定在最前，附加账户跟在其后
func (c *Composer) execute(owner, delegate solana.PublicKey, coder DataCoder, extra func(smart solana.PublicKey) []*solana.AccountMeta) (*Transaction, error) {
	if delegate.IsZero() {
		return nil, errors.New("execute: delegate is required")
	}
	smart, _, err := DeriveSmartAccount(owner, c.programID)
	if err != nil {
		return nil, err
	}
	payload, err := coder.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode sub-instruction: %w", err)
	}

	// 指令数据 = execute识别码 | u32小端长度 | 子指令字节
	data := InstructionDiscriminator("execute")
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(payload)))
	data = append(data, size[:]...)
	data = append(data, payload...)

	metas := []*solana.AccountMeta{
		{PublicKey: smart},
		{PublicKey: delegate, IsSigner: true},
	}
	metas = append(metas, extra(smart)...)

	ix := NewBaseInstruction(c.programID, metas, data)
	return &Transaction{Instructions: []solana.Instruction{ix}}, nil
}

// GetState 读取并解码链上的智能账户记录
// 每次都按组装器配置的确认等级实时查询，不做任何本地缓存
// 网络错误原样向上传递，不重试
func (c *Composer) GetState(ctx context.Context, address solana.PublicKey) (*SmartAccountState, error) {
	if c.client == nil {
		return nil, errors.New("composer has no account reader")
	}
	res, err := c.client.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
		}
		return nil, fmt.Errorf("fetch smart account %s: %w", address, err)
	}
	if res == nil || res.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	if !res.Value.Owner.Equals(c.programID) {
		return nil, fmt.Errorf("%w: %s is owned by %s", ErrForeignAccount, address, res.Value.Owner)
	}
	if res.Value.Data == nil {
		return nil, fmt.Errorf("%w: account has no data", ErrInvalidAccountData)
	}
	return DecodeSmartAccountState(res.Value.Data.GetBinary())
}

// GetStateByOwner 按所有者派生地址后读取状态
func (c *Composer) GetStateByOwner(ctx context.Context, owner ...solana.PublicKey) (*SmartAccountState, error) {
	smart, _, err := DeriveSmartAccount(c.ownerOr(owner), c.programID)
	if err != nil {
		return nil, err
	}
	return c.GetState(ctx, smart)
}

func (c *Composer) ownerOr(owner []solana.PublicKey) solana.PublicKey {
	if len(owner) > 0 && !owner[0].IsZero() {
		return owner[0]
	}
	return c.owner
}

// 管理类操作共用的账户对
func (c *Composer) ownerAccounts(smart, owner solana.PublicKey) []*solana.AccountMeta {
	return []*solana.AccountMeta{
		{PublicKey: smart, IsWritable: true},
		{PublicKey: owner, IsSigner: true},
	}
}
